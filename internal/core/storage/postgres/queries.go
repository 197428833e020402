package postgres

import (
	"strconv"
	"strings"

	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

// SQL queries for outage event storage operations

const (
	eventColumns = `id, controller_id, outage_type, start_time, end_time`

	// queryFindLatest returns the open event for a grouping key.
	// Served by idx_outage_events_key_end (controller_id, outage_type, end_time DESC).
	queryFindLatest = `
		SELECT ` + eventColumns + `
		FROM outage_events
		WHERE controller_id = $1
		  AND outage_type = $2
		ORDER BY end_time DESC, seq DESC
		LIMIT 1
	`

	// queryExtendEnd advances end_time. Zero affected rows means the id is gone.
	queryExtendEnd = `
		UPDATE outage_events
		SET end_time = $2
		WHERE id = $1
	`

	// queryInsertEvent inserts a new event; seq is assigned by the database
	// and provides insertion order for queries.
	queryInsertEvent = `
		INSERT INTO outage_events (
			id, controller_id, outage_type, start_time, end_time
		)
		VALUES ($1, $2, $3, $4, $5)
	`

	querySelectEvents = `SELECT ` + eventColumns + ` FROM outage_events`
)

// buildQueryEvents renders the filtered listing query and its positional args.
// Results come back in insertion order (seq ASC).
func buildQueryEvents(f storage.EventFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}

	if f.ControllerID != "" {
		add("controller_id =", f.ControllerID)
	}
	if f.OutageType != "" {
		add("outage_type =", string(f.OutageType))
	}
	if !f.StartFrom.IsZero() {
		add("start_time >=", f.StartFrom)
	}
	if !f.EndUntil.IsZero() {
		add("end_time <=", f.EndUntil)
	}

	var b strings.Builder
	b.WriteString(querySelectEvents)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY seq ASC")

	if f.Limit > 0 {
		args = append(args, f.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if f.Skip > 0 {
		args = append(args, f.Skip)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	return b.String(), args
}
