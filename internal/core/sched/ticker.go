package sched

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTicker reports a malformed ticker construction: a
// non-positive rate or interval, or a nil part in a composition.
var ErrInvalidTicker = errors.New("invalid ticker")

// Ticker is a pure scheduling policy. The loop offers it every pump pass
// via Tick with the current (possibly virtual) time; the ticker reports
// whether its processor fires and which delta it observes. Reset
// establishes the baseline when the processor starts or the ticker is
// swapped in.
//
// Tickers compose: Conditional and Throttled wrap any base Ticker.
type Ticker interface {
	Reset(now time.Time)
	Tick(now time.Time) (dt time.Duration, fire bool)
}

// maxBacklog caps fixed-rate catch-up. A stall longer than this many
// intervals drops the backlog instead of replaying it as a burst.
const maxBacklog = 8

type fixedRate struct {
	interval time.Duration
	next     time.Time
}

// NewFixedRate returns a ticker that fires every 1/hz seconds of loop
// time and always reports the constant step 1/hz, keeping accumulated
// task time exact for deterministic physics stepping. A pump
// that arrives late fires once per pass until caught up.
func NewFixedRate(hz float64) (Ticker, error) {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return nil, fmt.Errorf("%w: rate %v", ErrInvalidTicker, hz)
	}
	return &fixedRate{interval: time.Duration(float64(time.Second) / hz)}, nil
}

func (t *fixedRate) Reset(now time.Time) {
	t.next = now.Add(t.interval)
}

func (t *fixedRate) Tick(now time.Time) (time.Duration, bool) {
	if now.Before(t.next) {
		return 0, false
	}
	if now.Sub(t.next) > maxBacklog*t.interval {
		t.next = now.Add(t.interval)
		return t.interval, true
	}
	t.next = t.next.Add(t.interval)
	return t.interval, true
}

type frameSynced struct {
	last time.Time
}

// NewFrameSynced returns a ticker that fires on every pump pass (the
// pass is the host's display refresh), reporting the measured elapsed
// time since the previous fire.
func NewFrameSynced() Ticker {
	return &frameSynced{}
}

func (t *frameSynced) Reset(now time.Time) {
	t.last = now
}

func (t *frameSynced) Tick(now time.Time) (time.Duration, bool) {
	dt := now.Sub(t.last)
	t.last = now
	return dt, true
}

type conditional struct {
	base Ticker
	pred func() bool
}

// NewConditional gates base on a predicate. While the predicate is false
// the base still observes time, so skipped ticks are dropped rather than
// queued for replay.
func NewConditional(base Ticker, pred func() bool) (Ticker, error) {
	if base == nil || pred == nil {
		return nil, fmt.Errorf("%w: conditional needs a base ticker and a predicate", ErrInvalidTicker)
	}
	return &conditional{base: base, pred: pred}, nil
}

func (t *conditional) Reset(now time.Time) {
	t.base.Reset(now)
}

func (t *conditional) Tick(now time.Time) (time.Duration, bool) {
	dt, fire := t.base.Tick(now)
	if !t.pred() {
		return 0, false
	}
	return dt, fire
}

type throttled struct {
	base  Ticker
	min   time.Duration
	last  time.Time
	fired bool
}

// NewThrottled suppresses fires from base that occur before min has
// elapsed since the last accepted fire. The first fire after Reset is
// always accepted.
func NewThrottled(base Ticker, min time.Duration) (Ticker, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: throttled needs a base ticker", ErrInvalidTicker)
	}
	if min <= 0 {
		return nil, fmt.Errorf("%w: throttle interval %v", ErrInvalidTicker, min)
	}
	return &throttled{base: base, min: min}, nil
}

func (t *throttled) Reset(now time.Time) {
	t.base.Reset(now)
	t.fired = false
}

func (t *throttled) Tick(now time.Time) (time.Duration, bool) {
	dt, fire := t.base.Tick(now)
	if !fire {
		return 0, false
	}
	if t.fired && now.Sub(t.last) < t.min {
		return 0, false
	}
	t.last = now
	t.fired = true
	return dt, true
}
