package stage

import "time"

// State is a component's lifecycle phase. Transitions are owned by the
// actor: Constructed at attach, then Pending or Ready depending on the
// declared dependencies, and Disposed exactly once on removal. Resolution
// is monotonic: a Ready component never reverts to Pending, even if a
// required sibling is removed later.
type State uint8

const (
	StateConstructed State = iota
	StatePending
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Component is an attachable behavior fragment owned by exactly one
// actor. Concrete components embed Base, which supplies the non-owning
// owner back-reference, and report the TypeID they were registered under.
type Component interface {
	Type() TypeID

	// provided by the embedded Base; keeps ownership non-forgeable.
	attach(owner *Actor)
	detach()
}

// Base carries the owner back-reference every component needs. The link
// is set by the actor on attach and cleared on dispose; it is a lookup
// aid only and never extends the actor's lifetime.
type Base struct {
	owner *Actor
}

// Owner returns the actor this component is attached to, or nil when the
// component is detached or disposed.
func (b *Base) Owner() *Actor { return b.owner }

func (b *Base) attach(owner *Actor) { b.owner = owner }
func (b *Base) detach()             { b.owner = nil }

// Optional lifecycle capabilities, checked structurally at the attachment
// boundary. A component implements only the ones it needs.

// Initializer runs immediately after attachment, before any dependency
// check. Sibling components may not be present yet.
type Initializer interface {
	Init()
}

// Resolver is the resolution hook: invoked exactly once, when every
// declared sibling dependency is present on the owner. Components cache
// sibling references here. Resolve must not attach or remove components
// on the same actor.
type Resolver interface {
	Resolve()
}

// Updater is per-tick behavior, driven by processor tasks that iterate
// the scene.
type Updater interface {
	Update(dt time.Duration)
}

// Disposer tears down external registrations (event-bus subscriptions,
// processor tasks) when the component is removed or its actor destroyed.
type Disposer interface {
	Dispose()
}
