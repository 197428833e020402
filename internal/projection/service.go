package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
	"github.com/gridwatch-lab/outage-events/internal/metrics"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid event query")

// Service implements the read side: filter and paginate stored events.
// It contains no aggregation logic.
type Service struct {
	eventStore   storage.EventStore
	defaultLimit int
	maxLimit     int
	metrics      *metrics.Metrics
}

// NewService creates a new projection service. Non-positive limits fall back
// to DefaultLimit and MaxLimit. m may be nil.
func NewService(eventStore storage.EventStore, defaultLimit, maxLimit int, m *metrics.Metrics) *Service {
	if eventStore == nil {
		panic("projection: event store must not be nil")
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Service{
		eventStore:   eventStore,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		metrics:      m,
	}
}

// List returns events matching req in store-native order. No total count is
// computed; callers page with limit and skip until a short page comes back.
func (s *Service) List(ctx context.Context, req EventQueryRequest) ([]*v1.OutageEvent, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	events, err := s.eventStore.Query(ctx, filter)
	s.metrics.ObserveStore(metrics.OpQuery, start)
	if err != nil {
		slog.Error("Failed to query events", "error", err, "controller_id", filter.ControllerID)
		return nil, fmt.Errorf("query events: %w", err)
	}

	if events == nil {
		events = []*v1.OutageEvent{}
	}
	return events, nil
}

// buildFilter validates the raw request and converts it into a store filter.
func (s *Service) buildFilter(req EventQueryRequest) (storage.EventFilter, error) {
	filter := storage.EventFilter{
		ControllerID: strings.TrimSpace(req.ControllerID),
		Limit:        s.defaultLimit,
	}

	if req.OutageType != "" {
		t, err := v1.ParseOutageType(req.OutageType)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		filter.OutageType = t
	}

	if req.StartTime != "" {
		ts, err := v1.ParseTimestamp(req.StartTime)
		if err != nil {
			return filter, fmt.Errorf("%w: start_time: %w", ErrInvalidQuery, err)
		}
		filter.StartFrom = ts.Time
	}

	if req.EndTime != "" {
		ts, err := v1.ParseTimestamp(req.EndTime)
		if err != nil {
			return filter, fmt.Errorf("%w: end_time: %w", ErrInvalidQuery, err)
		}
		filter.EndUntil = ts.Time
	}

	if req.Limit != "" {
		limit, err := strconv.Atoi(req.Limit)
		if err != nil || limit <= 0 {
			return filter, fmt.Errorf("%w: limit must be a positive integer, got %q", ErrInvalidQuery, req.Limit)
		}
		if limit > s.maxLimit {
			limit = s.maxLimit
		}
		filter.Limit = limit
	}

	if req.Skip != "" {
		skip, err := strconv.Atoi(req.Skip)
		if err != nil || skip < 0 {
			return filter, fmt.Errorf("%w: skip must be a non-negative integer, got %q", ErrInvalidQuery, req.Skip)
		}
		filter.Skip = skip
	}

	return filter, nil
}
