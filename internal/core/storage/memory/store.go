package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

// Store is an in-memory implementation of storage.EventStore.
// Useful for testing and development. Query returns insertion order.
type Store struct {
	mu     sync.RWMutex
	events []*v1.OutageEvent
	byID   map[string]*v1.OutageEvent
}

// NewStore creates an empty in-memory event store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*v1.OutageEvent),
	}
}

func (s *Store) FindLatest(ctx context.Context, controllerID string, outageType v1.OutageType) (*v1.OutageEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *v1.OutageEvent
	for _, evt := range s.events {
		if evt.ControllerID != controllerID || evt.OutageType != outageType {
			continue
		}
		if latest == nil || evt.EndTime.After(latest.EndTime.Time) {
			latest = evt
		}
	}
	if latest == nil {
		return nil, nil
	}

	// Return a copy to prevent external modification
	evt := *latest
	return &evt, nil
}

func (s *Store) ExtendEnd(ctx context.Context, id string, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	evt, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	evt.EndTime = v1.NewTimestamp(end)
	return nil
}

func (s *Store) Insert(ctx context.Context, event *v1.OutageEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.NewString()
	stored := *event
	s.events = append(s.events, &stored)
	s.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) Query(ctx context.Context, filter storage.EventFilter) ([]*v1.OutageEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*v1.OutageEvent, 0)
	skipped := 0
	for _, evt := range s.events {
		if !matches(evt, filter) {
			continue
		}
		if skipped < filter.Skip {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
		out := *evt
		result = append(result, &out)
	}
	return result, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Delete removes an event. The service never deletes events; tests use this
// to simulate a record vanishing between read and write.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	for i, evt := range s.events {
		if evt.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func matches(evt *v1.OutageEvent, f storage.EventFilter) bool {
	if f.ControllerID != "" && evt.ControllerID != f.ControllerID {
		return false
	}
	if f.OutageType != "" && evt.OutageType != f.OutageType {
		return false
	}
	if !f.StartFrom.IsZero() && evt.StartTime.Before(f.StartFrom) {
		return false
	}
	if !f.EndUntil.IsZero() && evt.EndTime.After(f.EndUntil) {
		return false
	}
	return true
}
