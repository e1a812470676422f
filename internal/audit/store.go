package audit

import "context"

// Store persists audit events and serves them back per performer.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPerformer(ctx context.Context, performerID string, limit int) ([]Event, error)
}

// Sink receives a copy of every persisted event, e.g. a message broker.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
