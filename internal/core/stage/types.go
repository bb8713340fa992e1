package stage

import "fmt"

// TypeID is the stable identifier of a concrete component type. IDs are
// assigned sequentially at registration and used as map and index keys
// everywhere; runtime type identity is never consulted.
type TypeID uint32

type typeInfo struct {
	name     string
	requires []TypeID
}

// TypeRegistry is the static registration table mapping each concrete
// component type to its ID and declared sibling dependencies. Hosts
// register every type once at startup, before building actors.
type TypeRegistry struct {
	byName map[string]TypeID
	infos  []typeInfo
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]TypeID, 16),
		infos:  make([]typeInfo, 0, 16),
	}
}

// Register assigns the next TypeID to name and records the sibling types
// that must be present on an actor before a component of this type
// resolves. Requirements must already be registered, which makes
// dependency cycles unrepresentable. Registration mistakes are startup
// programming errors and panic.
func (r *TypeRegistry) Register(name string, requires ...TypeID) TypeID {
	if name == "" {
		panic("stage: component type name must not be empty")
	}
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("stage: component type %q registered twice", name))
	}
	for _, dep := range requires {
		if int(dep) >= len(r.infos) {
			panic(fmt.Sprintf("stage: component type %q requires unregistered type %d", name, dep))
		}
	}
	id := TypeID(len(r.infos))
	r.infos = append(r.infos, typeInfo{name: name, requires: append([]TypeID(nil), requires...)})
	r.byName[name] = id
	return id
}

// Lookup resolves a registered type name to its ID.
func (r *TypeRegistry) Lookup(name string) (TypeID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Name returns the registered name for id, or a diagnostic placeholder
// for IDs this registry never issued.
func (r *TypeRegistry) Name(id TypeID) string {
	if int(id) >= len(r.infos) {
		return fmt.Sprintf("unregistered(%d)", id)
	}
	return r.infos[id].name
}

// Requires returns the declared dependencies of id. The returned slice is
// owned by the registry and must not be mutated.
func (r *TypeRegistry) Requires(id TypeID) []TypeID {
	if int(id) >= len(r.infos) {
		return nil
	}
	return r.infos[id].requires
}

// Count reports how many types have been registered.
func (r *TypeRegistry) Count() int {
	return len(r.infos)
}
