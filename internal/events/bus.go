package events

import (
	"context"
	"maps"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Bus fans out events to every subscriber.
type Bus struct {
	subs       map[chan Event]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
	now        func() time.Time
}

// NewBus creates a bus with the default buffer size (64).
func NewBus() *Bus {
	return NewBusWithBuffer(defaultBufferSize)
}

// NewBusWithBuffer creates a bus with a custom per-subscriber buffer size.
func NewBusWithBuffer(size int) *Bus {
	return &Bus{
		subs:       make(map[chan Event]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
		now:        time.Now,
	}
}

// Subscribe creates a new subscription channel.
// The channel is closed when ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event)
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event, b.bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.subs[sub]; !ok {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish sends an event to all subscribers.
// Non-blocking: drops the event for subscribers whose buffer is full.
func (b *Bus) Publish(eventType Type, requirementID string, fields map[string]string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	event := Event{
		Type:          eventType,
		RequirementID: requirementID,
		Fields:        maps.Clone(fields),
		Timestamp:     b.now(),
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

// Close shuts down the bus and all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return
	default:
	}

	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
