package postgres

import (
	"fmt"
	"time"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into an OutageEvent.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.OutageEvent, error) {
	var (
		evt        v1.OutageEvent
		outageType string
		start, end time.Time
	)

	err := row.Scan(
		&evt.ID,
		&evt.ControllerID,
		&outageType,
		&start,
		&end,
	)
	if err != nil {
		return nil, err
	}

	evt.OutageType = v1.OutageType(outageType)
	evt.StartTime = v1.NewTimestamp(start)
	evt.EndTime = v1.NewTimestamp(end)
	return &evt, nil
}

// unavailable wraps a driver error as a retryable store failure.
func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, storage.ErrUnavailable, err)
}
