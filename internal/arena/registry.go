package arena

import "LockOnArena/internal/targeting"

// Registry tracks the candidates that currently exist in one room's world.
// Candidates iterate in entity-ID order, so ties in the selection pipeline
// resolve the same way on every pass.
type Registry struct {
	world   *World
	entries map[EntityID]*WorldCandidate
	order   []EntityID
}

func NewRegistry(world *World) *Registry {
	return &Registry{
		world:   world,
		entries: map[EntityID]*WorldCandidate{},
	}
}

// Register adds an entity and returns its adapter. Idempotent.
func (r *Registry) Register(id EntityID) *WorldCandidate {
	if c, ok := r.entries[id]; ok {
		return c
	}
	c := &WorldCandidate{world: r.world, id: id}
	r.entries[id] = c
	r.insertOrdered(id)
	return c
}

// Unregister removes an entity, reporting whether it was present.
func (r *Registry) Unregister(id EntityID) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, have := range r.order {
		if have == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Candidate returns the adapter for a registered entity, or nil.
func (r *Registry) Candidate(id EntityID) *WorldCandidate { return r.entries[id] }

func (r *Registry) insertOrdered(id EntityID) {
	at := len(r.order)
	for i, have := range r.order {
		if id < have {
			at = i
			break
		}
	}
	r.order = append(r.order, 0)
	copy(r.order[at+1:], r.order[at:])
	r.order[at] = id
}

// RegisterCandidate implements targeting.Registry for adapters produced by
// this registry. Foreign candidate types are rejected.
func (r *Registry) RegisterCandidate(c targeting.Candidate) bool {
	wc, ok := c.(*WorldCandidate)
	if !ok {
		return false
	}
	if _, have := r.entries[wc.id]; have {
		return false
	}
	r.entries[wc.id] = wc
	r.insertOrdered(wc.id)
	return true
}

// UnregisterCandidate implements targeting.Registry.
func (r *Registry) UnregisterCandidate(c targeting.Candidate) bool {
	wc, ok := c.(*WorldCandidate)
	if !ok {
		return false
	}
	return r.Unregister(wc.id)
}

// Candidates returns the registered set in entity-ID order. The slice is
// rebuilt per call; the core only holds it for one evaluation.
func (r *Registry) Candidates() []targeting.Candidate {
	out := make([]targeting.Candidate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}
