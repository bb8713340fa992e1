package component

import (
	"time"

	"github.com/stagecraft/engine/internal/core/stage"
)

// Motion integrates a velocity into the sibling transform each tick. It
// declares a dependency on Transform and stays Pending until one is
// attached.
type Motion struct {
	stage.Base
	typ          stage.TypeID
	transformTyp stage.TypeID
	VX, VY       float64

	transform *Transform // cached in Resolve
}

func NewMotion(ts Types, vx, vy float64) *Motion {
	return &Motion{typ: ts.Motion, transformTyp: ts.Transform, VX: vx, VY: vy}
}

func (m *Motion) Type() stage.TypeID { return m.typ }

// Resolve caches the transform sibling. Runs once, when the dependency
// is satisfied.
func (m *Motion) Resolve() {
	if c, ok := m.Owner().Component(m.transformTyp); ok {
		m.transform = c.(*Transform)
	}
}

// Update advances the cached transform by one step of velocity.
func (m *Motion) Update(dt time.Duration) {
	if m.transform == nil {
		return
	}
	s := dt.Seconds()
	m.transform.X += m.VX * s
	m.transform.Y += m.VY * s
}
