package stage

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stagecraft/engine/internal/core/event"
)

// Scene is an indexed collection of resident actors. Each component type
// has a secondary index listing the resident actors that carry it,
// maintained incrementally on every actor or component add/remove. A
// query never rebuilds an index from scratch.
type Scene struct {
	types  *TypeRegistry
	actors map[uuid.UUID]*Actor
	order  []*Actor            // insertion order; gives queries a stable result order
	index  map[TypeID][]*Actor // per-type residents, insertion order per bucket
	bus    *event.Bus          // optional; lifecycle notifications
	log    *zap.Logger
}

// NewScene creates an empty scene over the given type registry. bus may
// be nil; when set, residency and component changes are announced on it.
func NewScene(types *TypeRegistry, bus *event.Bus, log *zap.Logger) *Scene {
	return &Scene{
		types:  types,
		actors: make(map[uuid.UUID]*Actor, 64),
		index:  make(map[TypeID][]*Actor, types.Count()),
		bus:    bus,
		log:    log,
	}
}

// Types returns the registry the scene was built with.
func (s *Scene) Types() *TypeRegistry { return s.types }

// AddActor makes a resident. Every component type already attached is
// indexed, so the cost is O(k) in the actor's component count.
func (s *Scene) AddActor(a *Actor) error {
	if a.scene == s {
		return nil
	}
	if a.scene != nil {
		return fmt.Errorf("actor %q is resident in another scene", a.name)
	}
	if a.types != s.types {
		return fmt.Errorf("actor %q was built from a different type registry", a.name)
	}
	a.scene = s
	s.actors[a.id] = a
	s.order = append(s.order, a)
	for _, t := range a.order {
		s.indexAdd(t, a)
	}
	s.log.Debug("actor added", zap.String("actor", a.name), zap.Int("components", len(a.order)))
	if s.bus != nil {
		s.bus.Emit(ActorEvent{kind: KindActorAdded, Actor: a})
	}
	return nil
}

// RemoveActor drops a from the scene and destroys it: every component is
// disposed in reverse attachment order. A non-resident actor is a no-op.
func (s *Scene) RemoveActor(a *Actor) {
	if a.scene != s {
		return
	}
	for _, t := range a.order {
		s.indexRemove(t, a)
	}
	delete(s.actors, a.id)
	for i, r := range s.order {
		if r == a {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	a.scene = nil
	s.log.Debug("actor removed", zap.String("actor", a.name))
	if s.bus != nil {
		s.bus.Emit(ActorEvent{kind: KindActorRemoved, Actor: a})
	}
	a.Destroy()
}

// Actor returns the resident actor with the given ID.
func (s *Scene) Actor(id uuid.UUID) (*Actor, bool) {
	a, ok := s.actors[id]
	return a, ok
}

// Len reports the number of resident actors.
func (s *Scene) Len() int { return len(s.actors) }

// Actors returns the residents in insertion order.
func (s *Scene) Actors() []*Actor {
	return append([]*Actor(nil), s.order...)
}

// Clear tears the scene down, destroying every resident actor.
func (s *Scene) Clear() {
	for len(s.order) > 0 {
		s.RemoveActor(s.order[len(s.order)-1])
	}
}

func (s *Scene) indexAdd(t TypeID, a *Actor) {
	s.index[t] = append(s.index[t], a)
	if s.bus != nil {
		s.bus.Emit(ComponentEvent{kind: KindComponentAttached, Actor: a, Type: t})
	}
}

func (s *Scene) indexRemove(t TypeID, a *Actor) {
	bucket := s.index[t]
	for i, r := range bucket {
		if r == a {
			s.index[t] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if s.bus != nil {
		s.bus.Emit(ComponentEvent{kind: KindComponentDetached, Actor: a, Type: t})
	}
}
