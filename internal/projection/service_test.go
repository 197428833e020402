package projection

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
	storagemocks "github.com/gridwatch-lab/outage-events/internal/mocks/storage"
)

func TestService_List_Validation(t *testing.T) {
	eventStore := storagemocks.NewEventStore(t) // no calls expected
	svc := NewService(eventStore, 0, 0, nil)

	tests := []struct {
		name string
		req  EventQueryRequest
	}{
		{name: "unknown outage type", req: EventQueryRequest{OutageType: "PANEL"}},
		{name: "bad start_time", req: EventQueryRequest{StartTime: "last week"}},
		{name: "bad end_time", req: EventQueryRequest{EndTime: "2023-13-01T00:00:00"}},
		{name: "zero limit", req: EventQueryRequest{Limit: "0"}},
		{name: "negative limit", req: EventQueryRequest{Limit: "-5"}},
		{name: "non numeric limit", req: EventQueryRequest{Limit: "ten"}},
		{name: "negative skip", req: EventQueryRequest{Skip: "-1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestService_List_BuildsFilter(t *testing.T) {
	eventStore := storagemocks.NewEventStore(t)
	svc := NewService(eventStore, 100, 1000, nil)

	expected := storage.EventFilter{
		ControllerID: "C",
		OutageType:   v1.TemperatureOutage,
		StartFrom:    time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
		EndUntil:     time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		Limit:        1000,
		Skip:         20,
	}
	events := []*v1.OutageEvent{{ID: "evt-1", ControllerID: "C", OutageType: v1.TemperatureOutage}}

	eventStore.EXPECT().Query(mock.Anything, expected).Return(events, nil).Once()

	got, err := svc.List(context.Background(), EventQueryRequest{
		ControllerID: "C",
		OutageType:   "temperature_outage",
		StartTime:    "2023-01-01T10:00:00+05:00", // offset is stripped
		EndTime:      "2023-01-01 12:00:00",
		Limit:        "5000", // capped
		Skip:         "20",
	})
	require.NoError(t, err)
	require.Equal(t, events, got)
}

func TestService_List_Defaults(t *testing.T) {
	eventStore := storagemocks.NewEventStore(t)
	svc := NewService(eventStore, 0, 0, nil)

	eventStore.EXPECT().
		Query(mock.Anything, storage.EventFilter{Limit: DefaultLimit}).
		Return(nil, nil).
		Once()

	got, err := svc.List(context.Background(), EventQueryRequest{})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestService_List_StoreError(t *testing.T) {
	eventStore := storagemocks.NewEventStore(t)
	svc := NewService(eventStore, 0, 0, nil)

	eventStore.EXPECT().
		Query(mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to query events: %w: %w", storage.ErrUnavailable, errors.New("timeout"))).
		Once()

	_, err := svc.List(context.Background(), EventQueryRequest{ControllerID: "C"})
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestNewService_Limits(t *testing.T) {
	eventStore := storagemocks.NewEventStore(t)

	svc := NewService(eventStore, 500, 100, nil)
	require.Equal(t, 500, svc.defaultLimit)
	require.Equal(t, 500, svc.maxLimit)

	require.Panics(t, func() { NewService(nil, 0, 0, nil) })
}
