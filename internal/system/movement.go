package system

import (
	"time"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Movement integrates every motion component once per simulation tick.
// Registered as a task on the fixed-rate processor, so dt is the
// constant simulation step.
type Movement struct {
	scene *stage.Scene
	types component.Types
}

func NewMovement(scene *stage.Scene, types component.Types) *Movement {
	return &Movement{scene: scene, types: types}
}

// Run queries for actors carrying both transform and motion and steps
// each one. Only resolved motions move: a motion still waiting on its
// transform is skipped.
func (m *Movement) Run(dt time.Duration) {
	for _, a := range m.scene.Query().
		WithComponent(m.types.Transform).
		WithComponent(m.types.Motion).
		Execute() {
		c, err := a.Resolved(m.types.Motion)
		if err != nil {
			continue
		}
		c.(*component.Motion).Update(dt)
	}
}
