// Package state provides the environment/state providers that requirement
// predicates read and configuration commits write.
package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

// Errors
var (
	ErrEmptyKey      = errors.New("key cannot be empty")
	ErrUnknownDriver = errors.New("unknown state driver")
)

// Store is a persisted environment. Commit must store all values or none.
type Store interface {
	requirement.Environment
	requirement.Recorder

	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
	SetCapability(ctx context.Context, name string, enabled bool) error
	// Submissions returns accepted configurations, oldest first. An empty
	// requirementID returns submissions for every requirement.
	Submissions(ctx context.Context, requirementID string) ([]Submission, error)
	Close() error
}

// Submission is one accepted configuration.
type Submission struct {
	ID            uuid.UUID         `json:"id"`
	RequirementID string            `json:"requirement_id"`
	Values        map[string]string `json:"values"`
	SubmittedAt   time.Time         `json:"submitted_at"`
}

// NewSubmission stamps a new submission with a random id.
func NewSubmission(requirementID string, values map[string]string, at time.Time) Submission {
	return Submission{
		ID:            uuid.New(),
		RequirementID: requirementID,
		Values:        values,
		SubmittedAt:   at.UTC(),
	}
}

// NormalizeCapability lower-cases and trims a capability name.
func NormalizeCapability(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", ErrEmptyKey
	}
	return n, nil
}

// ValidateKey rejects empty setting keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// Seed enables each capability in caps.
func Seed(ctx context.Context, s Store, caps []string) error {
	for _, c := range caps {
		if err := s.SetCapability(ctx, c, true); err != nil {
			return err
		}
	}
	return nil
}
