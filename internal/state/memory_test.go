package state

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Settings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetSetting(ctx, "site.name", "Example"))
	v, ok, err := s.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Example", v)

	all, err := s.Settings(ctx)
	require.NoError(t, err)
	all["site.name"] = "mutated"
	v, _, _ = s.Setting(ctx, "site.name")
	require.Equal(t, "Example", v, "Settings returns a copy")

	require.NoError(t, s.DeleteSetting(ctx, "site.name"))
	_, ok, _ = s.Setting(ctx, "site.name")
	require.False(t, ok)

	require.ErrorIs(t, s.SetSetting(ctx, " ", "x"), ErrEmptyKey)
}

func TestMemoryStore_Capabilities(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, Seed(ctx, s, []string{"Search", "cron"}))
	caps, err := s.Capabilities(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"cron", "search"}, caps)

	require.NoError(t, s.SetCapability(ctx, "SEARCH", false))
	caps, _ = s.Capabilities(ctx)
	require.Equal(t, []string{"cron"}, caps)

	require.ErrorIs(t, s.SetCapability(ctx, "", true), ErrEmptyKey)
}

func TestMemoryStore_Commit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	require.NoError(t, s.Commit(ctx, "site", map[string]string{"site.name": "Example", "site.mail": "a@b.c"}))
	require.NoError(t, s.Commit(ctx, "cron", map[string]string{"cron.key": "k"}))

	v, ok, _ := s.Setting(ctx, "site.mail")
	require.True(t, ok)
	require.Equal(t, "a@b.c", v)

	subs, err := s.Submissions(ctx, "site")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "site", subs[0].RequirementID)
	require.Equal(t, at, subs[0].SubmittedAt)
	require.NotEqual(t, uuid.Nil, subs[0].ID)

	all, err := s.Submissions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "cron", all[1].RequirementID)
}

func TestMemoryStore_Commit_IsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Commit(ctx, "site", map[string]string{"site.name": "Example", "": "bad"})
	require.ErrorIs(t, err, ErrEmptyKey)

	all, _ := s.Settings(ctx)
	require.Empty(t, all)
	subs, _ := s.Submissions(ctx, "")
	require.Empty(t, subs)
}
