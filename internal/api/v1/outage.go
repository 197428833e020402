package v1

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutageType is the kind of outage a controller reports.
type OutageType string

const (
	PanelOutage       OutageType = "panel_outage"
	TemperatureOutage OutageType = "temperature_outage"
	LEDOutage         OutageType = "led_outage"
)

// OutageTypes lists every accepted outage type in declaration order.
var OutageTypes = []OutageType{PanelOutage, TemperatureOutage, LEDOutage}

// Valid reports whether t is one of the known outage types.
func (t OutageType) Valid() bool {
	switch t {
	case PanelOutage, TemperatureOutage, LEDOutage:
		return true
	}
	return false
}

// ParseOutageType converts a wire value into an OutageType.
func ParseOutageType(s string) (OutageType, error) {
	t := OutageType(s)
	if !t.Valid() {
		return "", fmt.Errorf("outage_type must be one of %s, got %q", joinTypes(), s)
	}
	return t, nil
}

func joinTypes() string {
	names := make([]string, len(OutageTypes))
	for i, t := range OutageTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Signal is one "outage observed" report from a field controller.
// It is consumed by the aggregator and never persisted as-is.
type Signal struct {
	// ControllerID identifies the reporting field controller.
	ControllerID string `json:"controller_id"`

	// OutageType is what the controller observed.
	OutageType OutageType `json:"outage_type"`

	// Timestamp is when the outage was observed. Any offset supplied by the
	// client is discarded; see Naive.
	Timestamp Timestamp `json:"timestamp"`
}

// Validate ensures the signal carries every required field.
func (s *Signal) Validate() error {
	if strings.TrimSpace(s.ControllerID) == "" {
		return fmt.Errorf("controller_id is required")
	}

	if s.OutageType == "" {
		return fmt.Errorf("outage_type is required")
	}
	if !s.OutageType.Valid() {
		return fmt.Errorf("outage_type must be one of %s, got %q", joinTypes(), s.OutageType)
	}

	if s.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}

	return nil
}

// Key returns the grouping key the signal aggregates under.
func (s Signal) Key() GroupKey {
	return GroupKey{ControllerID: s.ControllerID, OutageType: s.OutageType}
}

// JSON renders the signal the way it is echoed back in ingestion messages.
func (s Signal) JSON() string {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(b)
}

// GroupKey is the unit over which events are tracked and merged.
type GroupKey struct {
	ControllerID string
	OutageType   OutageType
}

func (k GroupKey) String() string {
	return k.ControllerID + "/" + string(k.OutageType)
}

// OutageEvent is a contiguous span of outage built from merged signals.
// StartTime never changes after creation; EndTime only moves forward.
type OutageEvent struct {
	// ID is assigned by the event store and is opaque to callers.
	ID string `json:"_id"`

	ControllerID string     `json:"controller_id"`
	OutageType   OutageType `json:"outage_type"`
	StartTime    Timestamp  `json:"start_time"`
	EndTime      Timestamp  `json:"end_time"`
}

// Key returns the grouping key of the event.
func (e *OutageEvent) Key() GroupKey {
	return GroupKey{ControllerID: e.ControllerID, OutageType: e.OutageType}
}
