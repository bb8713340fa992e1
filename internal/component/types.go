package component

import "github.com/stagecraft/engine/internal/core/stage"

// Types is the registration table handed to everything that constructs or
// queries the built-in components. Hosts call RegisterTypes once at
// startup on the registry their scene uses.
type Types struct {
	Transform stage.TypeID
	Motion    stage.TypeID
	Health    stage.TypeID
	Behavior  stage.TypeID
}

// RegisterTypes registers the built-in component types and their declared
// sibling dependencies: motion and behavior both require a transform to
// act on.
func RegisterTypes(reg *stage.TypeRegistry) Types {
	transform := reg.Register("transform")
	return Types{
		Transform: transform,
		Motion:    reg.Register("motion", transform),
		Health:    reg.Register("health"),
		Behavior:  reg.Register("behavior", transform),
	}
}
