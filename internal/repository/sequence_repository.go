package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Sequence scopes. Items and client codes each count independently per
// reseller.
const (
	ScopeIncidentItem = "incident_item"
	ScopeClientCodigo = "client_codigo"
)

// RowQuerier is satisfied by both pgxpool.Pool and pgx.Tx, so counters
// can be advanced inside the transaction that persists the owning row.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NextSequence atomically advances and returns the per-reseller counter
// for the given scope. The upsert is a single statement, so two
// concurrent allocations for the same reseller can never observe the
// same value; the first allocation returns 1.
func NextSequence(ctx context.Context, q RowQuerier, scope, permisionario string) (int, error) {
	if strings.TrimSpace(permisionario) == "" {
		return 0, errors.New("permisionario required for sequence allocation")
	}

	const query = `
        INSERT INTO sequences (scope, permisionario, value)
        VALUES ($1, $2, 1)
        ON CONFLICT (scope, permisionario)
        DO UPDATE SET value = sequences.value + 1
        RETURNING value`

	var value int
	if err := q.QueryRow(ctx, query, scope, permisionario).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}
