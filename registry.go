package strata

// Registry tracks every chunk coordinate ever discovered. It only grows;
// chunks are never unloaded, so a coordinate that passes TryRegister once
// is generated at most once for the lifetime of the process.
type Registry struct {
	seen map[Coord]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[Coord]struct{}),
	}
}

// TryRegister inserts the coordinate and reports whether it was new. This
// is the sole dedup gate: the tracker re-enumerates overlapping
// coordinates every frame, and only a true return may lead to an enqueue.
func (r *Registry) TryRegister(c Coord) bool {
	if _, ok := r.seen[c]; ok {
		return false
	}
	r.seen[c] = struct{}{}
	return true
}

func (r *Registry) Contains(c Coord) bool {
	_, ok := r.seen[c]
	return ok
}

func (r *Registry) Len() int {
	return len(r.seen)
}
