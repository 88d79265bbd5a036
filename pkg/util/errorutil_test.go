package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	t.Parallel()

	original := NewValidationError("bad input", map[string]any{"campo": "requerido"})
	mapped := ToDomainError(original)
	require.Equal(t, "VALIDATION_FAILED", mapped.Code)
	require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	require.Equal(t, "requerido", mapped.Details["campo"])
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	t.Parallel()

	mapped := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", mapped.Code)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "incidents_permisionario_item_key"}
	mapped := ToDomainError(pgErr)
	require.Equal(t, "CONFLICT", mapped.Code)
	require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	require.Equal(t, "incidents_permisionario_item_key", mapped.Details["constraint"])
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	mapped := ToDomainError(cause)
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	require.ErrorIs(t, mapped, cause)
	// The client-facing message never leaks the cause.
	require.Equal(t, "internal server error", mapped.Message)
}

func TestToDomainErrorNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, ToDomainError(nil))
}
