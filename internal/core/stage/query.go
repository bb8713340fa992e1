package stage

import "sort"

// Query is a builder over the scene's per-type indices. Queries only
// read: they never touch actor or component state, so they are safe to
// run from inside a processor task iterating the same scene.
type Query struct {
	scene *Scene
	types []TypeID
}

// Query starts a new query over the scene.
func (s *Scene) Query() *Query {
	return &Query{scene: s}
}

// WithComponent narrows the result to actors carrying t. Chaining order
// does not affect the result set.
func (q *Query) WithComponent(t TypeID) *Query {
	q.types = append(q.types, t)
	return q
}

// Execute intersects the per-type indices, seeding from the smallest so
// the scan is bounded by the rarest requested type; the remaining types
// are checked in ascending index size. With no types it returns every
// resident. Results follow the seed index's insertion order, so they are
// stable for a given scene state.
func (q *Query) Execute() []*Actor {
	s := q.scene
	if len(q.types) == 0 {
		return append([]*Actor(nil), s.order...)
	}
	types := append([]TypeID(nil), q.types...)
	sort.Slice(types, func(i, j int) bool {
		return len(s.index[types[i]]) < len(s.index[types[j]])
	})
	seed := s.index[types[0]]
	out := make([]*Actor, 0, len(seed))
outer:
	for _, a := range seed {
		for _, t := range types[1:] {
			if !a.Has(t) {
				continue outer
			}
		}
		out = append(out, a)
	}
	return out
}
