package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() {
		_ = dbCtx.Close()
	})
	return dbCtx
}
