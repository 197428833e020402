package aggregation

import "time"

// DefaultTolerance is the widest gap between consecutive signals that still
// counts as one ongoing outage.
const DefaultTolerance = 12 * time.Minute

// Outcome is the decision taken for one signal.
type Outcome string

const (
	OutcomeCreated           Outcome = "created"
	OutcomeExtended          Outcome = "extended"
	OutcomeRejectedStale     Outcome = "rejected_stale"
	OutcomeRejectedDuplicate Outcome = "rejected_duplicate"
)

// Outcomes lists every outcome, used to pre-register metric labels.
var Outcomes = []Outcome{
	OutcomeCreated,
	OutcomeExtended,
	OutcomeRejectedStale,
	OutcomeRejectedDuplicate,
}

// Accepted reports whether the signal was absorbed into the store.
func (o Outcome) Accepted() bool {
	return o == OutcomeCreated || o == OutcomeExtended
}

// Rejected reports whether the signal conflicted with stored state.
func (o Outcome) Rejected() bool {
	return o == OutcomeRejectedStale || o == OutcomeRejectedDuplicate
}
