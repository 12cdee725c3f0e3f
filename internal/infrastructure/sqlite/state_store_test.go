package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/requisite/internal/state"
)

func newTestStore(t *testing.T) *StateStore {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	store := db.StateStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStateStore_Settings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok, err := s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetSetting(ctx, "site.name", "Example"))
	require.NoError(t, s.SetSetting(ctx, "site.name", "Renamed"))

	v, ok, err := s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Renamed", v)

	all, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"site.name": "Renamed"}, all)

	require.NoError(t, s.DeleteSetting(ctx, "site.name"))
	_, ok, err = s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, s.SetSetting(ctx, "", "x"), state.ErrEmptyKey)
}

func TestStateStore_Capabilities(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetCapability(ctx, "Search", true))
	require.NoError(t, s.SetCapability(ctx, "cron", true))
	require.NoError(t, s.SetCapability(ctx, "search", true))

	caps, err := s.Capabilities(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"cron", "search"}, caps)

	require.NoError(t, s.SetCapability(ctx, "cron", false))
	caps, err = s.Capabilities(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"search"}, caps)
}

func TestStateStore_Commit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	at := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	require.NoError(t, s.Commit(ctx, "site", map[string]string{"site.name": "Example", "site.mail": "ops@example.com"}))
	require.NoError(t, s.Commit(ctx, "site", map[string]string{"site.name": "Second"}))
	require.NoError(t, s.Commit(ctx, "cron", map[string]string{}))

	v, _, err := s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.Equal(t, "Second", v)

	subs, err := s.Submissions(ctx, "site")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, map[string]string{"site.name": "Example", "site.mail": "ops@example.com"}, subs[0].Values)
	require.Equal(t, map[string]string{"site.name": "Second"}, subs[1].Values)
	require.Equal(t, at, subs[0].SubmittedAt)

	all, err := s.Submissions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "cron", all[2].RequirementID)
	require.Empty(t, all[2].Values)
}

func TestStateStore_Commit_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// A failing insert after the first setting is written must undo it.
	_, err := s.db.conn.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON submission_values
		WHEN NEW.key = 'bad' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	err = s.Commit(ctx, "site", map[string]string{"site.name": "Example", "bad": "x"})
	require.Error(t, err)

	all, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
	subs, err := s.Submissions(ctx, "")
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestStateStore_Commit_RejectsEmptyKey(t *testing.T) {
	s := newTestStore(t)
	err := s.Commit(context.Background(), "site", map[string]string{"": "x"})
	require.ErrorIs(t, err, state.ErrEmptyKey)
}

func TestMigrateDriver_Lock(t *testing.T) {
	s := newTestStore(t)
	d, err := newMigrateDriver(s.db.conn)
	require.NoError(t, err)

	require.NoError(t, d.Lock())
	require.ErrorIs(t, d.Lock(), database.ErrLocked)
	require.NoError(t, d.Unlock())
	require.ErrorIs(t, d.Unlock(), database.ErrNotLocked)
}

func TestMigrateDriver_Version(t *testing.T) {
	s := newTestStore(t)
	d, err := newMigrateDriver(s.db.conn)
	require.NoError(t, err)

	v, dirty, err := d.Version()
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.False(t, dirty)

	require.NoError(t, d.SetVersion(database.NilVersion, false))
	v, _, err = d.Version()
	require.NoError(t, err)
	require.Equal(t, database.NilVersion, v)

	require.NoError(t, d.SetVersion(7, true))
	v, dirty, err = d.Version()
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.True(t, dirty)
}
