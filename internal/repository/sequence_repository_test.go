package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextSequenceRequiresPermisionario(t *testing.T) {
	t.Parallel()

	_, err := NextSequence(context.Background(), nil, ScopeIncidentItem, "")
	require.Error(t, err)

	_, err = NextSequence(context.Background(), nil, ScopeClientCodigo, "   ")
	require.Error(t, err)
}
