package stage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type slot struct {
	comp  Component
	state State
}

// Actor is an identity owning at most one component instance per concrete
// type. Created detached; it becomes scene-resident via Scene.AddActor.
type Actor struct {
	id    uuid.UUID
	name  string
	types *TypeRegistry
	comps map[TypeID]*slot
	order []TypeID // attachment order
	scene *Scene   // non-owning residency link
	// guards against attach/remove from inside a resolution pass, which
	// would make hook ordering depend on iteration state.
	resolving bool
}

// NewActor creates a detached actor. The type registry must be the same
// one the target scene was built with.
func NewActor(types *TypeRegistry, name string) *Actor {
	return &Actor{
		id:    uuid.New(),
		name:  name,
		types: types,
		comps: make(map[TypeID]*slot, 4),
	}
}

func (a *Actor) ID() uuid.UUID { return a.id }
func (a *Actor) Name() string  { return a.name }

// Scene returns the scene the actor is resident in, or nil.
func (a *Actor) Scene() *Scene { return a.scene }

// AddComponent binds c to this actor and inserts it keyed by its type.
// The new component resolves immediately when its declared dependencies
// are all present; otherwise it parks in Pending. Attaching may also
// complete the requirements of earlier Pending siblings, which then
// resolve in attachment order.
func (a *Actor) AddComponent(c Component) error {
	t := c.Type()
	if a.resolving {
		return fmt.Errorf("%w: attach %s to %q from a resolution hook", ErrReentrantMutation, a.types.Name(t), a.name)
	}
	if _, dup := a.comps[t]; dup {
		return fmt.Errorf("%w: %s on actor %q", ErrDuplicateComponent, a.types.Name(t), a.name)
	}
	c.attach(a)
	a.comps[t] = &slot{comp: c, state: StateConstructed}
	a.order = append(a.order, t)
	if a.scene != nil {
		a.scene.indexAdd(t, a)
	}
	if init, ok := c.(Initializer); ok {
		init.Init()
	}
	a.resolveAll()
	return nil
}

// Component returns the instance of type t, if attached. O(1).
func (a *Actor) Component(t TypeID) (Component, bool) {
	s, ok := a.comps[t]
	if !ok {
		return nil, false
	}
	return s.comp, true
}

// Has reports whether an instance of type t is attached.
func (a *Actor) Has(t TypeID) bool {
	_, ok := a.comps[t]
	return ok
}

// ComponentState returns the lifecycle state of the attached instance of
// type t.
func (a *Actor) ComponentState(t TypeID) (State, bool) {
	s, ok := a.comps[t]
	if !ok {
		return 0, false
	}
	return s.state, true
}

// Resolved returns the instance of type t only if it reached Ready. A
// Pending component yields ErrMissingDependency naming the absent types
// and the requesting type; an absent component yields ErrComponentNotFound.
func (a *Actor) Resolved(t TypeID) (Component, error) {
	s, ok := a.comps[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s on actor %q", ErrComponentNotFound, a.types.Name(t), a.name)
	}
	if s.state != StateReady {
		return nil, fmt.Errorf("%w: %s required by %s on actor %q",
			ErrMissingDependency, a.missingNames(t), a.types.Name(t), a.name)
	}
	return s.comp, nil
}

// RemoveComponent disposes the instance of type t and removes it. The
// component's Dispose hook runs before the map entry disappears, so it
// can still reach its owner while unsubscribing.
func (a *Actor) RemoveComponent(t TypeID) error {
	if a.resolving {
		return fmt.Errorf("%w: remove %s from %q inside a resolution pass", ErrReentrantMutation, a.types.Name(t), a.name)
	}
	s, ok := a.comps[t]
	if !ok {
		return fmt.Errorf("%w: %s on actor %q", ErrComponentNotFound, a.types.Name(t), a.name)
	}
	a.disposeSlot(t, s)
	for i, ot := range a.order {
		if ot == t {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

// Destroy disposes every component in reverse attachment order and
// detaches from the scene if resident. Destruction proceeds owner to
// owned: the scene drops the actor first, then the actor drops its
// components.
func (a *Actor) Destroy() {
	if a.scene != nil {
		a.scene.RemoveActor(a)
		return
	}
	for i := len(a.order) - 1; i >= 0; i-- {
		t := a.order[i]
		if s, ok := a.comps[t]; ok {
			a.disposeSlot(t, s)
		}
	}
	a.order = a.order[:0]
}

// ComponentTypes returns the attached types in attachment order.
func (a *Actor) ComponentTypes() []TypeID {
	return append([]TypeID(nil), a.order...)
}

func (a *Actor) disposeSlot(t TypeID, s *slot) {
	if d, ok := s.comp.(Disposer); ok {
		d.Dispose()
	}
	s.state = StateDisposed
	s.comp.detach()
	delete(a.comps, t)
	if a.scene != nil {
		a.scene.indexRemove(t, a)
	}
}

// resolveAll walks components in attachment order and promotes every
// non-Ready one whose declared dependencies are all present. The hook is
// one-shot: once a component is Ready it is never re-checked, and a later
// removal of a dependency does not demote it.
func (a *Actor) resolveAll() {
	a.resolving = true
	defer func() { a.resolving = false }()
	for _, t := range a.order {
		s := a.comps[t]
		if s.state == StateReady {
			continue
		}
		if !a.depsPresent(t) {
			s.state = StatePending
			continue
		}
		s.state = StateReady
		if r, ok := s.comp.(Resolver); ok {
			r.Resolve()
		}
	}
}

func (a *Actor) depsPresent(t TypeID) bool {
	for _, dep := range a.types.Requires(t) {
		if _, ok := a.comps[dep]; !ok {
			return false
		}
	}
	return true
}

func (a *Actor) missingNames(t TypeID) string {
	var names []string
	for _, dep := range a.types.Requires(t) {
		if _, ok := a.comps[dep]; !ok {
			names = append(names, a.types.Name(dep))
		}
	}
	if len(names) == 0 {
		return "unresolved dependencies"
	}
	return strings.Join(names, ", ")
}
