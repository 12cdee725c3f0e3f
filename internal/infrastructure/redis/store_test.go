package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyURL(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	require.ErrorIs(t, err, ErrEmptyURL)
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "http://not-redis", "")
	require.ErrorContains(t, err, "parse redis URL")
}

func TestStore_Keys(t *testing.T) {
	s := NewStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, "requisite:settings", s.settingsKey())
	require.Equal(t, "requisite:capabilities", s.capabilitiesKey())
	require.Equal(t, "requisite:submissions", s.submissionsKey(""))
	require.Equal(t, "requisite:submissions:site", s.submissionsKey("site"))

	custom := NewStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "test:")
	t.Cleanup(func() { _ = custom.Close() })
	require.Equal(t, "test:settings", custom.settingsKey())
}
