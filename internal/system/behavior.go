package system

import (
	"time"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Behavior drives every resolved behavior component's Update each
// simulation tick. It only relies on the Updater capability, so any
// scripted or native behavior type works.
type Behavior struct {
	scene *stage.Scene
	types component.Types
}

func NewBehavior(scene *stage.Scene, types component.Types) *Behavior {
	return &Behavior{scene: scene, types: types}
}

func (b *Behavior) Run(dt time.Duration) {
	for _, a := range b.scene.Query().WithComponent(b.types.Behavior).Execute() {
		c, err := a.Resolved(b.types.Behavior)
		if err != nil {
			continue
		}
		if u, ok := c.(stage.Updater); ok {
			u.Update(dt)
		}
	}
}
