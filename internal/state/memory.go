package state

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	settings    map[string]string
	caps        map[string]bool
	submissions []Submission
	now         func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		settings: make(map[string]string),
		caps:     make(map[string]bool),
		now:      time.Now,
	}
}

func (m *MemoryStore) Setting(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.settings[key]
	return v, ok, nil
}

func (m *MemoryStore) Settings(context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.settings), nil
}

func (m *MemoryStore) Capabilities(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.caps)), nil
}

func (m *MemoryStore) Commit(_ context.Context, requirementID string, values map[string]string) error {
	for k := range values {
		if err := ValidateKey(k); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.settings, values)
	m.submissions = append(m.submissions, NewSubmission(requirementID, maps.Clone(values), m.now()))
	return nil
}

func (m *MemoryStore) SetSetting(_ context.Context, key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MemoryStore) DeleteSetting(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, key)
	return nil
}

func (m *MemoryStore) SetCapability(_ context.Context, name string, enabled bool) error {
	n, err := NormalizeCapability(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		m.caps[n] = true
	} else {
		delete(m.caps, n)
	}
	return nil
}

func (m *MemoryStore) Submissions(_ context.Context, requirementID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Submission
	for _, s := range m.submissions {
		if requirementID == "" || s.RequirementID == requirementID {
			s.Values = maps.Clone(s.Values)
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
