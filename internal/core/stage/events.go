package stage

// Lifecycle notifications emitted on the scene's bus, when one is
// configured. External collaborators (render batching, physics sync,
// editor bridges) subscribe to these instead of polling the scene.
const (
	KindActorAdded        = "scene.actor_added"
	KindActorRemoved      = "scene.actor_removed"
	KindComponentAttached = "scene.component_attached"
	KindComponentDetached = "scene.component_detached"
)

// ActorEvent announces a residency change.
type ActorEvent struct {
	kind  string
	Actor *Actor
}

func (e ActorEvent) Kind() string { return e.kind }

// ComponentEvent announces an indexed component change on a resident
// actor.
type ComponentEvent struct {
	kind  string
	Actor *Actor
	Type  TypeID
}

func (e ComponentEvent) Kind() string { return e.kind }
