package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout is how timestamps are rendered on the wire: no offset, fractional
// seconds only when present.
const naiveLayout = "2006-01-02T15:04:05.999999"

// recordLayout is the space separated form used in rejection messages.
const recordLayout = "2006-01-02 15:04:05"

// acceptedLayouts are tried in order when parsing client supplied instants.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Naive strips the location from t while keeping its wall clock reading.
// The result is expressed in UTC and truncated to milliseconds, which is the
// finest precision every supported store keeps (BSON datetimes stop there).
//
// Callers must pre-normalize instants to a single reference timezone: two
// signals carrying different offsets are compared by wall clock only.
func Naive(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.UTC,
	).Truncate(time.Millisecond)
}

// Timestamp is a timezone-naive instant.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t after normalizing it with Naive.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: Naive(t)}
}

// ParseTimestamp parses an ISO-8601 instant, with or without offset, and
// returns its naive form.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// String renders the timestamp without offset.
func (t Timestamp) String() string {
	return t.Time.Format(naiveLayout)
}

// Record renders the timestamp with a space separator and, when the instant
// has a fractional part, six fractional digits.
func (t Timestamp) Record() string {
	if t.Nanosecond() == 0 {
		return t.Time.Format(recordLayout)
	}
	return t.Time.Format(recordLayout + ".000000")
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
