package testutil

import (
	"context"
	"sync"

	"seatbook/internal/notifications"
)

// RecordingPublisher keeps every published event in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	events []notifications.Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, event notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.Err
}

func (p *RecordingPublisher) Close() error { return nil }

// Events returns a copy of what has been published so far
func (p *RecordingPublisher) Events() []notifications.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.Event, len(p.events))
	copy(out, p.events)
	return out
}
