package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/core/event"
	"github.com/stagecraft/engine/internal/core/service"
	"github.com/stagecraft/engine/internal/core/stage"
	"github.com/stagecraft/engine/internal/data"
	"github.com/stagecraft/engine/internal/script"
)

// ServiceScriptEngine is the registry key under which the host hands the
// Lua engine to behavior components.
const ServiceScriptEngine = "script.engine"

// Spawner builds actors from manifest specs and adds them to the scene.
type Spawner struct {
	scene    *stage.Scene
	types    component.Types
	bus      *event.Bus
	services *service.Registry
	log      *zap.Logger
}

func NewSpawner(scene *stage.Scene, types component.Types, bus *event.Bus, services *service.Registry, log *zap.Logger) *Spawner {
	return &Spawner{scene: scene, types: types, bus: bus, services: services, log: log}
}

// SpawnAll builds every actor the manifest declares and reports how many
// were added. It fails on the first malformed spec, leaving earlier
// actors resident.
func (s *Spawner) SpawnAll(m *data.Manifest) (int, error) {
	for i, spec := range m.Actors {
		if err := s.spawn(spec); err != nil {
			return i, fmt.Errorf("spawn actor %q: %w", spec.Name, err)
		}
	}
	s.log.Info("scene spawned", zap.Int("actors", m.Count()))
	return m.Count(), nil
}

func (s *Spawner) spawn(spec data.ActorSpec) error {
	a := stage.NewActor(s.scene.Types(), spec.Name)
	for _, cs := range spec.Components {
		c, err := s.build(cs)
		if err != nil {
			return err
		}
		if err := a.AddComponent(c); err != nil {
			return err
		}
	}
	return s.scene.AddActor(a)
}

func (s *Spawner) build(cs data.ComponentSpec) (stage.Component, error) {
	switch cs.Type {
	case "transform":
		return component.NewTransform(s.types, cs.Params["x"], cs.Params["y"]), nil
	case "motion":
		return component.NewMotion(s.types, cs.Params["vx"], cs.Params["vy"]), nil
	case "health":
		hp := int(cs.Params["max_hp"])
		if hp <= 0 {
			hp = 10
		}
		return component.NewHealth(s.types, s.bus, hp), nil
	case "behavior":
		if cs.Script == "" {
			return nil, fmt.Errorf("behavior component declared without a script function")
		}
		raw, ok := s.services.Resolve(ServiceScriptEngine)
		if !ok {
			return nil, fmt.Errorf("behavior %q needs the %s service", cs.Script, ServiceScriptEngine)
		}
		return script.NewBehavior(s.types, raw.(*script.Engine), cs.Script), nil
	default:
		return nil, fmt.Errorf("unknown component type %q", cs.Type)
	}
}
