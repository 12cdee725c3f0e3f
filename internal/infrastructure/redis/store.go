// Package redis implements the state store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zjrosen/requisite/internal/state"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "requisite:"

// ErrEmptyURL is returned when no Redis URL is configured.
var ErrEmptyURL = errors.New("redis url cannot be empty")

// Store implements state.Store on Redis: settings live in a hash, capabilities
// in a set and submissions in lists. Commit runs as one MULTI/EXEC transaction.
type Store struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ state.Store = (*Store)(nil)

// Open connects to the Redis server at url and verifies it with PING.
func Open(ctx context.Context, url, prefix string) (*Store, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewStore(client, prefix), nil
}

// NewStore wraps an existing client. An empty prefix uses DefaultPrefix.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, now: time.Now}
}

func (s *Store) settingsKey() string {
	return s.prefix + "settings"
}

func (s *Store) capabilitiesKey() string {
	return s.prefix + "capabilities"
}

func (s *Store) submissionsKey(requirementID string) string {
	if requirementID == "" {
		return s.prefix + "submissions"
	}
	return s.prefix + "submissions:" + requirementID
}

func (s *Store) Setting(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.settingsKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting: %w", err)
	}
	return v, true, nil
}

func (s *Store) Settings(ctx context.Context) (map[string]string, error) {
	out, err := s.client.HGetAll(ctx, s.settingsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

func (s *Store) Capabilities(ctx context.Context) ([]string, error) {
	caps, err := s.client.SMembers(ctx, s.capabilitiesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list capabilities: %w", err)
	}
	slices.Sort(caps)
	return caps, nil
}

func (s *Store) Commit(ctx context.Context, requirementID string, values map[string]string) error {
	for k := range values {
		if err := state.ValidateKey(k); err != nil {
			return err
		}
	}

	sub := state.NewSubmission(requirementID, maps.Clone(values), s.now())
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(values) > 0 {
			pipe.HSet(ctx, s.settingsKey(), values)
		}
		pipe.RPush(ctx, s.submissionsKey(""), payload)
		pipe.RPush(ctx, s.submissionsKey(requirementID), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit configuration: %w", err)
	}
	return nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.settingsKey(), key, value).Err(); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.settingsKey(), key).Err(); err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}

func (s *Store) SetCapability(ctx context.Context, name string, enabled bool) error {
	n, err := state.NormalizeCapability(name)
	if err != nil {
		return err
	}
	if enabled {
		err = s.client.SAdd(ctx, s.capabilitiesKey(), n).Err()
	} else {
		err = s.client.SRem(ctx, s.capabilitiesKey(), n).Err()
	}
	if err != nil {
		return fmt.Errorf("set capability: %w", err)
	}
	return nil
}

func (s *Store) Submissions(ctx context.Context, requirementID string) ([]state.Submission, error) {
	raw, err := s.client.LRange(ctx, s.submissionsKey(requirementID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]state.Submission, 0, len(raw))
	for _, r := range raw {
		var sub state.Submission
		if err := json.Unmarshal([]byte(r), &sub); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
