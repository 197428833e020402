package projection

// EventQueryRequest carries the raw query-string filters for GET /api/v1/events.
// Everything is optional; values are parsed and validated by Service.List.
type EventQueryRequest struct {
	ControllerID string `form:"controller_id"`
	OutageType   string `form:"outage_type"`
	StartTime    string `form:"start_time"` // event start_time >= value
	EndTime      string `form:"end_time"`   // event end_time <= value
	Limit        string `form:"limit"`      // default: query.default_limit
	Skip         string `form:"skip"`       // default: 0
}
