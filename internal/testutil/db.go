package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/requisite/internal/infrastructure/sqlite"
)

// NewTestStore opens a migrated SQLite state store in a temp directory.
// The store is closed when the test ends.
func NewTestStore(t *testing.T) *sqlite.StateStore {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	store := db.StateStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}
