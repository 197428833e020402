//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch-lab/outage-events/internal/aggregation"
	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	httperr "github.com/gridwatch-lab/outage-events/internal/core/errors"
	"github.com/gridwatch-lab/outage-events/internal/core/lock"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
	"github.com/gridwatch-lab/outage-events/internal/ingestion"
	"github.com/gridwatch-lab/outage-events/internal/projection"
	"github.com/gridwatch-lab/outage-events/internal/server"
)

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case <-h.serverDone:
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}
}

// startHarness serves the full HTTP API over store on a free local port.
func startHarness(t *testing.T, store storage.EventStore, locker lock.Locker) *integrationHarness {
	t.Helper()

	agg := aggregation.New(store, locker, aggregation.DefaultTolerance, nil)
	ingestionSvc := ingestion.NewService(agg, 1)
	projectionSvc := projection.NewService(store, 100, 1000, nil)

	addr := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	httpServer := server.New(addr, store, nil, "release")
	ingestionSvc.RegisterRoutes(httpServer.Engine)
	projectionSvc.RegisterRoutes(httpServer.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() { serverDone <- httpServer.Run(ctx) }()

	baseURL := "http://" + addr
	waitForHealthy(t, baseURL)

	return &integrationHarness{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		cancel:     cancel,
		serverDone: serverDone,
	}
}

// runReferenceScenario drives signals at t, t+10m, t+20m, t+50m for one key
// plus a duplicate and a stale record, then checks the two resulting events.
func runReferenceScenario(t *testing.T, h *integrationHarness, controllerID string) {
	t.Helper()

	steps := []struct {
		ts     string
		status int
	}{
		{ts: "2023-01-01T10:00:00", status: http.StatusAccepted},
		{ts: "2023-01-01T10:10:00", status: http.StatusAccepted},
		{ts: "2023-01-01T10:20:00", status: http.StatusAccepted},
		{ts: "2023-01-01T10:20:00", status: http.StatusConflict},
		{ts: "2023-01-01T10:15:00", status: http.StatusConflict},
		{ts: "2023-01-01T10:50:00", status: http.StatusAccepted},
	}

	for _, step := range steps {
		status, body := postJSON(t, h.client, h.baseURL+"/api/v1/outages", map[string]string{
			"controller_id": controllerID,
			"outage_type":   string(v1.PanelOutage),
			"timestamp":     step.ts,
		})
		require.Equal(t, step.status, status, "timestamp %s: %s", step.ts, body)

		var msg httperr.MessageResponse
		require.NoError(t, json.Unmarshal(body, &msg))
		require.Contains(t, msg.Message, step.ts)
	}

	events := listEvents(t, h, url.Values{"controller_id": {controllerID}})
	require.Len(t, events, 2)

	require.NotEmpty(t, events[0].ID)
	require.Equal(t, "2023-01-01T10:00:00", events[0].StartTime.String())
	require.Equal(t, "2023-01-01T10:20:00", events[0].EndTime.String())
	require.Equal(t, "2023-01-01T10:50:00", events[1].StartTime.String())
	require.Equal(t, "2023-01-01T10:50:00", events[1].EndTime.String())

	// Filters and pagination go through the store's own query path.
	require.Len(t, listEvents(t, h, url.Values{"controller_id": {controllerID}, "start_time": {"2023-01-01T10:30:00"}}), 1)
	require.Len(t, listEvents(t, h, url.Values{"controller_id": {controllerID}, "end_time": {"2023-01-01T10:20:00"}}), 1)
	require.Len(t, listEvents(t, h, url.Values{"controller_id": {controllerID}, "outage_type": {"led_outage"}}), 0)
	page := listEvents(t, h, url.Values{"controller_id": {controllerID}, "limit": {"1"}, "skip": {"1"}})
	require.Len(t, page, 1)
	require.Equal(t, events[1].ID, page[0].ID)
}

func listEvents(t *testing.T, h *integrationHarness, q url.Values) []v1.OutageEvent {
	t.Helper()

	resp, err := h.client.Get(h.baseURL + "/api/v1/events?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var events []v1.OutageEvent
	require.NoError(t, json.Unmarshal(body, &events))
	return events
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server did not become healthy at %s", baseURL)
}

func postJSON(t *testing.T, client *http.Client, endpoint string, payload interface{}) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
