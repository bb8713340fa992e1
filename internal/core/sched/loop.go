package sched

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Loop is the host scheduler. It owns every running processor's
// scheduling registration and fires due processors one at a time from a
// single goroutine, so task executions never overlap: a long task
// blocks every other processor's due fires until it returns.
type Loop struct {
	procs []*Processor
	now   time.Time
	log   *zap.Logger
}

func NewLoop(log *zap.Logger) *Loop {
	return &Loop{now: time.Now(), log: log}
}

// Now returns the loop's current time: the instant of the ongoing or
// most recent pump pass. Virtual when the host drives Pump directly.
func (l *Loop) Now() time.Time { return l.now }

// Pump runs one scheduling pass at the given instant. Every processor
// registered when the pass starts is offered the tick in registration
// order; each fire runs to completion before the next is considered.
// Driving Pump with a synthetic clock gives fully deterministic
// stepping, which is how the tests exercise tickers.
func (l *Loop) Pump(now time.Time) {
	l.now = now
	procs := l.procs // fixed-length view; registrations during the pass apply next pass
	for _, p := range procs {
		if !p.running {
			continue
		}
		p.pump(now)
	}
}

// Run drives Pump from wall time until ctx is cancelled. resolution is
// the pump granularity: every ticker due within a pass fires once per
// pass, so it bounds scheduling jitter.
func (l *Loop) Run(ctx context.Context, resolution time.Duration) error {
	if resolution <= 0 {
		return fmt.Errorf("%w: pump resolution %v", ErrInvalidTicker, resolution)
	}
	driver := time.NewTicker(resolution)
	defer driver.Stop()
	l.log.Debug("loop running", zap.Duration("resolution", resolution))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-driver.C:
			l.Pump(now)
		}
	}
}

func (l *Loop) register(p *Processor) {
	for _, q := range l.procs {
		if q == p {
			return
		}
	}
	l.procs = append(l.procs, p)
}

// unregister rebuilds the slice so a pass iterating the previous view is
// not disturbed.
func (l *Loop) unregister(p *Processor) {
	for i, q := range l.procs {
		if q == p {
			next := make([]*Processor, 0, len(l.procs)-1)
			next = append(next, l.procs[:i]...)
			next = append(next, l.procs[i+1:]...)
			l.procs = next
			return
		}
	}
}
