package aggregation

import "time"

// Decide applies the merge rule to a signal observed at ts against the most
// recent event end for its grouping key.
//
// hasLast is false when the key has no events yet. A zero gap is a duplicate
// even though it lies within tolerance; a gap past tolerance by any amount
// opens a new event.
func Decide(lastEnd time.Time, hasLast bool, ts time.Time, tolerance time.Duration) Outcome {
	if !hasLast {
		return OutcomeCreated
	}

	diff := ts.Sub(lastEnd)
	switch {
	case diff < 0:
		return OutcomeRejectedStale
	case diff == 0:
		return OutcomeRejectedDuplicate
	case diff <= tolerance:
		return OutcomeExtended
	default:
		return OutcomeCreated
	}
}
