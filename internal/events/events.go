// Package events provides the in-process event bus for checklist activity.
package events

import (
	"context"
	"time"
)

// Type identifies what happened.
type Type string

const (
	RequirementConfigured Type = "requirement.configured"
	RequirementRejected   Type = "requirement.rejected"
	ManifestReloaded      Type = "manifest.reloaded"
	StateChanged          Type = "state.changed"
)

// Event is a published occurrence. RequirementID is empty for events that are
// not about a single requirement.
type Event struct {
	Type          Type              `json:"type"`
	RequirementID string            `json:"requirement_id,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Subscriber provides a subscription channel for events.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan Event
}

// Publisher publishes events.
type Publisher interface {
	Publish(eventType Type, requirementID string, fields map[string]string)
}
