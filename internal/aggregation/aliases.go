package aggregation

import core "github.com/gridwatch-lab/outage-events/internal/core/aggregation"

// Re-export core decision types so callers only import this package.
type Outcome = core.Outcome

const (
	OutcomeCreated           = core.OutcomeCreated
	OutcomeExtended          = core.OutcomeExtended
	OutcomeRejectedStale     = core.OutcomeRejectedStale
	OutcomeRejectedDuplicate = core.OutcomeRejectedDuplicate

	DefaultTolerance = core.DefaultTolerance
)

var (
	ErrInconsistent = core.ErrInconsistent
	ParseTolerance  = core.ParseTolerance
)
