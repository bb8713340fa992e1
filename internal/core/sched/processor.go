package sched

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TaskFunc is a unit of per-tick work. dt is the virtual time elapsed
// since the processor's previous fire (or since Start for the first).
type TaskFunc func(dt time.Duration)

type task struct {
	id string
	fn TaskFunc
}

// Processor drives an ordered task list from a pluggable Ticker. Its
// scheduling registration lives in the host Loop; at most one exists
// while the processor runs, and Stop always cancels it. All state is
// mutated on the loop's single logical thread.
type Processor struct {
	name    string
	ticker  Ticker
	tasks   []task
	scratch []task // per-tick snapshot, reused
	running bool
	halted  bool // set when a task panics mid-snapshot
	loop    *Loop
	log     *zap.Logger
}

// NewProcessor creates a stopped processor scheduled by ticker on loop.
func NewProcessor(loop *Loop, name string, ticker Ticker, log *zap.Logger) (*Processor, error) {
	if ticker == nil {
		return nil, fmt.Errorf("%w: processor %q needs a ticker", ErrInvalidTicker, name)
	}
	return &Processor{
		name:   name,
		ticker: ticker,
		loop:   loop,
		log:    log,
	}, nil
}

func (p *Processor) Name() string  { return p.name }
func (p *Processor) Running() bool { return p.running }

// AddTask appends a task under a stable identifier. Re-adding an existing
// id replaces the callback in place, keeping the original position.
// Changes made from inside a task become visible on the next tick.
func (p *Processor) AddTask(id string, fn TaskFunc) {
	for i := range p.tasks {
		if p.tasks[i].id == id {
			p.tasks[i].fn = fn
			return
		}
	}
	p.tasks = append(p.tasks, task{id: id, fn: fn})
}

// RemoveTask drops the task with the given id. A removal issued during
// the current tick takes effect on the next one.
func (p *Processor) RemoveTask(id string) bool {
	for i := range p.tasks {
		if p.tasks[i].id == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Start establishes the ticker baseline and registers the processor with
// its loop. Starting a running processor is a no-op.
func (p *Processor) Start() {
	if p.running {
		return
	}
	p.halted = false
	p.ticker.Reset(p.loop.Now())
	p.loop.register(p)
	p.running = true
	p.log.Debug("processor started", zap.String("processor", p.name))
}

// Stop cancels the scheduling registration. Idempotent, and safe to call
// from one of the processor's own tasks: the current snapshot finishes,
// but the next fire never happens.
func (p *Processor) Stop() {
	p.loop.unregister(p)
	if !p.running {
		return
	}
	p.running = false
	p.log.Debug("processor stopped", zap.String("processor", p.name))
}

// SetTicker swaps the scheduling policy. On a running processor the old
// registration is cancelled before the new ticker is installed, so a
// swap can never double-fire.
func (p *Processor) SetTicker(ticker Ticker) error {
	if ticker == nil {
		return fmt.Errorf("%w: processor %q given a nil ticker", ErrInvalidTicker, p.name)
	}
	if !p.running {
		p.ticker = ticker
		return nil
	}
	p.loop.unregister(p)
	p.ticker = ticker
	ticker.Reset(p.loop.Now())
	p.loop.register(p)
	return nil
}

// pump offers the current instant to the ticker and, when due, runs the
// task snapshot. Called only by the loop.
func (p *Processor) pump(now time.Time) {
	dt, fire := p.ticker.Tick(now)
	if !fire {
		return
	}
	p.executeTasks(dt)
}

// executeTasks runs every registered task in registration order over a
// snapshot taken at tick start, so mid-pass additions and removals apply
// next tick. A panicking task is fatal to this processor only: it is
// stopped and the rest of the snapshot is skipped; sibling processors
// are unaffected.
func (p *Processor) executeTasks(dt time.Duration) {
	p.scratch = append(p.scratch[:0], p.tasks...)
	for _, t := range p.scratch {
		p.runTask(t, dt)
		if p.halted {
			return
		}
	}
}

func (p *Processor) runTask(t task, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			p.halted = true
			p.log.Error("task panicked, stopping processor",
				zap.String("processor", p.name),
				zap.String("task", t.id),
				zap.Any("recovered", r))
			p.Stop()
		}
	}()
	t.fn(dt)
}
