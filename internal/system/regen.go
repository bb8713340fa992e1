package system

import (
	"time"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Regen restores one hit point per second to every damaged actor. Runs
// every simulation tick; an internal tick counter gates the actual heal,
// so the rate is independent of the simulation frequency.
type Regen struct {
	scene    *stage.Scene
	types    component.Types
	interval int // ticks per heal
	ticks    int
}

// NewRegen derives the gate from the simulation frequency: one heal per
// second of virtual time.
func NewRegen(scene *stage.Scene, types component.Types, simulationHz float64) *Regen {
	interval := int(simulationHz)
	if interval < 1 {
		interval = 1
	}
	return &Regen{scene: scene, types: types, interval: interval}
}

func (r *Regen) Run(_ time.Duration) {
	r.ticks++
	if r.ticks%r.interval != 0 {
		return
	}
	for _, a := range r.scene.Query().WithComponent(r.types.Health).Execute() {
		c, err := a.Resolved(r.types.Health)
		if err != nil {
			continue
		}
		h := c.(*component.Health)
		if h.HP > 0 {
			h.Heal(1)
		}
	}
}
