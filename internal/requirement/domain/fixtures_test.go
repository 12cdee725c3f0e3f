package requirement

import (
	"context"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memEnv is an in-memory Environment and Recorder for domain tests.
type memEnv struct {
	mu         sync.Mutex
	settings   map[string]string
	caps       []string
	commits    int
	commitErr  error
	readErr    error
	lastCommit map[string]string
}

func newMemEnv() *memEnv {
	return &memEnv{settings: make(map[string]string)}
}

func (e *memEnv) Setting(_ context.Context, key string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readErr != nil {
		return "", false, e.readErr
	}
	v, ok := e.settings[key]
	return v, ok, nil
}

func (e *memEnv) Settings(context.Context) (map[string]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readErr != nil {
		return nil, e.readErr
	}
	return maps.Clone(e.settings), nil
}

func (e *memEnv) Capabilities(context.Context) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.caps), nil
}

func (e *memEnv) Commit(_ context.Context, _ string, values map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.commitErr != nil {
		return e.commitErr
	}
	e.commits++
	e.lastCommit = maps.Clone(values)
	maps.Copy(e.settings, values)
	return nil
}

// fixed builds a requirement with constant predicates.
func fixed(t *testing.T, id string, applicable, completed bool, deps ...string) *Definition {
	t.Helper()
	def, err := NewBuilder(id).
		Label("Requirement " + id).
		DependsOn(deps...).
		Applicable(Always(applicable)).
		Completed(Always(completed)).
		Resolvable(Always(true)).
		Build()
	require.NoError(t, err)
	return def
}

// mkRegistry registers reqs in a fresh registry.
func mkRegistry(t *testing.T, reqs ...Requirement) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, r := range reqs {
		require.NoError(t, reg.Register(r))
	}
	return reg
}

func ids(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID()
	}
	return out
}

func mustField(t *testing.T, key, label string, ft FieldType, opts ...FieldOption) *Field {
	t.Helper()
	f, err := NewField(key, label, ft, opts...)
	require.NoError(t, err)
	return f
}

func mustForm(t *testing.T, fields ...*Field) *Form {
	t.Helper()
	f, err := NewForm(fields...)
	require.NoError(t, err)
	return f
}
