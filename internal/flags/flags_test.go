package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag set to true returns true",
			registry: New(map[string]bool{FlagStateCache: true}),
			flag:     FlagStateCache,
			expected: true,
		},
		{
			name:     "known flag set to false returns false",
			registry: New(map[string]bool{FlagManifestWatch: false}),
			flag:     FlagManifestWatch,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagStateCache: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagUserManifests,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagUserManifests,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestDefaults(t *testing.T) {
	r := New(Defaults())
	require.True(t, r.Enabled(FlagStateCache))
	require.True(t, r.Enabled(FlagManifestWatch))
	require.True(t, r.Enabled(FlagUserManifests))
}

func TestRegistry_All(t *testing.T) {
	require.Equal(t, map[string]bool{}, (*Registry)(nil).All())
	require.Equal(t, map[string]bool{}, New(nil).All())
	require.Equal(t, map[string]bool{"a": true, "b": false}, New(map[string]bool{"a": true, "b": false}).All())
}

func TestRegistry_IsolatedFromCallers(t *testing.T) {
	input := map[string]bool{FlagStateCache: true}
	r := New(input)

	input[FlagStateCache] = false
	require.True(t, r.Enabled(FlagStateCache), "registry should not share the input map")

	copied := r.All()
	copied[FlagStateCache] = false
	copied["new-flag"] = true
	require.True(t, r.Enabled(FlagStateCache), "registry should not be affected by copy mutation")
	require.False(t, r.Enabled("new-flag"))
}
