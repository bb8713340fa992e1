package stage

import "errors"

var (
	// ErrDuplicateComponent reports an attempt to attach a second instance
	// of a concrete type already present on the actor. Attachment never
	// silently replaces, since callers may hold cached references.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrComponentNotFound reports removal or demand of an absent type.
	ErrComponentNotFound = errors.New("component not found")

	// ErrMissingDependency reports a demand for a component whose declared
	// dependencies never resolved.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrReentrantMutation reports an attach or remove issued from inside a
	// dependency-resolution pass on the same actor.
	ErrReentrantMutation = errors.New("component mutation during resolution")
)
