package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/stage"
)

// Report periodically logs a scene snapshot. Registered on the
// frame-synced processor behind a throttled ticker, so it observes real
// elapsed time rather than simulation steps.
type Report struct {
	scene *stage.Scene
	types component.Types
	log   *zap.Logger
}

func NewReport(scene *stage.Scene, types component.Types, log *zap.Logger) *Report {
	return &Report{scene: scene, types: types, log: log}
}

func (r *Report) Run(dt time.Duration) {
	moving := r.scene.Query().WithComponent(r.types.Motion).Execute()
	r.log.Info("scene report",
		zap.Int("actors", r.scene.Len()),
		zap.Int("moving", len(moving)),
		zap.Duration("since_last", dt))
	for _, a := range moving {
		if c, ok := a.Component(r.types.Transform); ok {
			t := c.(*component.Transform)
			r.log.Debug("actor position",
				zap.String("actor", a.Name()),
				zap.Float64("x", t.X),
				zap.Float64("y", t.Y))
		}
	}
}
