package script

import (
	"time"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Behavior delegates an actor's per-tick logic to a Lua function. It
// requires a Transform sibling, cached once in Resolve; each Update
// packs the current position into a context table, calls the function,
// and writes the returned position back.
type Behavior struct {
	stage.Base
	typ          stage.TypeID
	transformTyp stage.TypeID
	engine       *Engine
	fn           string

	transform *component.Transform
}

func NewBehavior(ts component.Types, engine *Engine, fn string) *Behavior {
	return &Behavior{typ: ts.Behavior, transformTyp: ts.Transform, engine: engine, fn: fn}
}

func (b *Behavior) Type() stage.TypeID { return b.typ }

// Function returns the Lua function name this behavior calls.
func (b *Behavior) Function() string { return b.fn }

func (b *Behavior) Resolve() {
	if c, ok := b.Owner().Component(b.transformTyp); ok {
		b.transform = c.(*component.Transform)
	}
}

func (b *Behavior) Update(dt time.Duration) {
	if b.transform == nil || b.engine == nil {
		return
	}
	result, ok := b.engine.CallUpdate(b.fn, UpdateContext{
		X:  b.transform.X,
		Y:  b.transform.Y,
		DT: dt.Seconds(),
	})
	if !ok {
		return
	}
	b.transform.X = result.X
	b.transform.Y = result.Y
}
