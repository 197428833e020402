package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
)

var (
	// ErrNotFound is returned by ExtendEnd when the event id no longer exists.
	ErrNotFound = errors.New("outage event not found")

	// ErrUnavailable wraps transient infrastructure failures. Callers may resubmit.
	ErrUnavailable = errors.New("event store unavailable")
)

// EventFilter narrows a Query. Zero values mean "no constraint".
type EventFilter struct {
	ControllerID string
	OutageType   v1.OutageType

	// StartFrom keeps events with start_time >= StartFrom.
	StartFrom time.Time
	// EndUntil keeps events with end_time <= EndUntil.
	EndUntil time.Time

	Limit int
	Skip  int
}

// EventStore owns persisted outage events. Every operation touches a single
// record and is atomic with respect to it.
type EventStore interface {
	// FindLatest returns the event with the greatest end_time for the key,
	// or nil when the key has no events yet.
	FindLatest(ctx context.Context, controllerID string, outageType v1.OutageType) (*v1.OutageEvent, error)

	// ExtendEnd sets end_time unconditionally. Returns ErrNotFound if id is gone.
	ExtendEnd(ctx context.Context, id string, end time.Time) error

	// Insert persists a new event and returns its store-assigned id.
	// The id is also written back to event.ID.
	Insert(ctx context.Context, event *v1.OutageEvent) (string, error)

	// Query returns events matching filter in store-native order.
	Query(ctx context.Context, filter EventFilter) ([]*v1.OutageEvent, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
