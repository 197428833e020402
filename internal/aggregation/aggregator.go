// Package aggregation folds outage signals into outage events.
package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	core "github.com/gridwatch-lab/outage-events/internal/core/aggregation"
	"github.com/gridwatch-lab/outage-events/internal/core/lock"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
	"github.com/gridwatch-lab/outage-events/internal/metrics"
)

// Result is the decision taken for one signal.
type Result struct {
	Outcome Outcome
	// Message echoes the submitted record, plus the stored end time on rejections.
	Message string
	// Event is the created or extended event. Nil on rejection.
	Event *v1.OutageEvent
	// LastEnd is the end time of the latest stored event for the key, zero if none existed.
	LastEnd time.Time
}

// Aggregator applies the merge rule to one signal at a time.
// It holds no state across calls; everything lives in the store.
type Aggregator struct {
	store     storage.EventStore
	locker    lock.Locker
	tolerance time.Duration
	metrics   *metrics.Metrics
}

// New creates an Aggregator. A nil locker falls back to an in-process striped
// locker; a non-positive tolerance falls back to DefaultTolerance. m may be nil.
func New(store storage.EventStore, locker lock.Locker, tolerance time.Duration, m *metrics.Metrics) *Aggregator {
	if store == nil {
		panic("aggregation: store must not be nil")
	}
	if locker == nil {
		locker = lock.NewStriped(0)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Aggregator{
		store:     store,
		locker:    locker,
		tolerance: tolerance,
		metrics:   m,
	}
}

// Tolerance returns the configured merge window.
func (a *Aggregator) Tolerance() time.Duration {
	return a.tolerance
}

// Submit decides and applies the outcome for sig. Rejections are returned as
// outcomes with a nil error. Errors wrap storage.ErrUnavailable, lock.ErrTimeout
// or ErrInconsistent.
//
// The signal is validated by the caller.
func (a *Aggregator) Submit(ctx context.Context, sig v1.Signal) (Result, error) {
	sig.Timestamp = v1.NewTimestamp(sig.Timestamp.Time)
	ts := sig.Timestamp.Time
	key := sig.Key().String()

	waitStart := time.Now()
	unlock, err := a.locker.Lock(ctx, key)
	if err != nil {
		a.metrics.ObserveError(metrics.ReasonLockTimeout)
		slog.Warn("[Aggregator] Failed to acquire key lock", "key", key, "error", err)
		return Result{}, fmt.Errorf("lock %s: %w", key, err)
	}
	defer unlock()
	a.metrics.ObserveLockWait(time.Since(waitStart))

	last, err := a.findLatest(ctx, sig)
	if err != nil {
		return Result{}, a.fail(key, err)
	}

	var lastEnd time.Time
	if last != nil {
		lastEnd = last.EndTime.Time
	}

	outcome := core.Decide(lastEnd, last != nil, ts, a.tolerance)
	res := Result{Outcome: outcome, LastEnd: lastEnd}

	switch outcome {
	case OutcomeExtended:
		if err := a.extend(ctx, last, ts); err != nil {
			return Result{}, a.fail(key, err)
		}
		res.Event = last
		res.Message = "Updated " + sig.JSON()

	case OutcomeCreated:
		evt, err := a.create(ctx, sig)
		if err != nil {
			return Result{}, a.fail(key, err)
		}
		res.Event = evt
		res.Message = "Processed " + sig.JSON()

	case OutcomeRejectedStale:
		res.Message = fmt.Sprintf("Receiving older record : %s, last record : %s", sig.JSON(), v1.NewTimestamp(lastEnd).Record())

	case OutcomeRejectedDuplicate:
		res.Message = fmt.Sprintf("Receiving duplicated record : %s, last record : %s", sig.JSON(), v1.NewTimestamp(lastEnd).Record())
	}

	a.metrics.ObserveOutcome(sig.OutageType, outcome)

	attrs := []any{
		"controller_id", sig.ControllerID,
		"outage_type", sig.OutageType,
		"timestamp", sig.Timestamp.String(),
		"outcome", outcome,
	}
	if res.Event != nil {
		attrs = append(attrs, "event_id", res.Event.ID)
	}
	if outcome.Rejected() {
		attrs = append(attrs, "last_end", v1.NewTimestamp(lastEnd).String())
	}
	slog.Info("[Aggregator] Signal processed", attrs...)

	return res, nil
}

func (a *Aggregator) findLatest(ctx context.Context, sig v1.Signal) (*v1.OutageEvent, error) {
	defer a.metrics.ObserveStore(metrics.OpFindLatest, time.Now())
	return a.store.FindLatest(ctx, sig.ControllerID, sig.OutageType)
}

// extend advances last.EndTime to ts in the store and on last itself.
func (a *Aggregator) extend(ctx context.Context, last *v1.OutageEvent, ts time.Time) error {
	defer a.metrics.ObserveStore(metrics.OpExtendEnd, time.Now())

	if err := a.store.ExtendEnd(ctx, last.ID, ts); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: event %s: %w", ErrInconsistent, last.ID, err)
		}
		return err
	}
	last.EndTime = v1.NewTimestamp(ts)
	return nil
}

func (a *Aggregator) create(ctx context.Context, sig v1.Signal) (*v1.OutageEvent, error) {
	defer a.metrics.ObserveStore(metrics.OpInsert, time.Now())

	evt := &v1.OutageEvent{
		ControllerID: sig.ControllerID,
		OutageType:   sig.OutageType,
		StartTime:    sig.Timestamp,
		EndTime:      sig.Timestamp,
	}
	if _, err := a.store.Insert(ctx, evt); err != nil {
		return nil, err
	}
	return evt, nil
}

// fail records and logs a store-side failure for key.
func (a *Aggregator) fail(key string, err error) error {
	if errors.Is(err, ErrInconsistent) {
		a.metrics.ObserveError(metrics.ReasonInconsistent)
		slog.Error("[Aggregator] Inconsistent state", "key", key, "error", err)
	} else {
		if !errors.Is(err, storage.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
		a.metrics.ObserveError(metrics.ReasonStoreUnavailable)
		slog.Error("[Aggregator] Store operation failed", "key", key, "error", err)
	}
	return fmt.Errorf("submit %s: %w", key, err)
}
