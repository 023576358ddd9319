package arena

import "LockOnArena/internal/targeting"

// WorldCandidate adapts a targetable entity to the targeting.Candidate
// contract. One adapter exists per registered entity; identity is stable for
// the entity's lifetime so the core can compare candidates by reference.
type WorldCandidate struct {
	world *World
	id    EntityID
}

func (c *WorldCandidate) EntityID() EntityID { return c.id }

func (c *WorldCandidate) Enabled() bool {
	tc := c.world.Targetable(c.id)
	return tc != nil && tc.Enabled && c.world.Transform(c.id) != nil
}

func (c *WorldCandidate) CanBeCaptured() bool {
	tc := c.world.Targetable(c.id)
	if tc == nil {
		return false
	}
	if tc.CaptureHook != nil {
		return tc.CaptureHook()
	}
	return true
}

func (c *WorldCandidate) Location() targeting.Vec3 {
	if tr := c.world.Transform(c.id); tr != nil {
		return tr.Pos
	}
	return targeting.Vec3{}
}

func (c *WorldCandidate) Sockets() []targeting.SocketName {
	tc := c.world.Targetable(c.id)
	if tc == nil {
		return nil
	}
	names := make([]targeting.SocketName, len(tc.Sockets))
	for i, s := range tc.Sockets {
		names[i] = s.Name
	}
	return names
}

func (c *WorldCandidate) SocketLocation(name targeting.SocketName) (targeting.Vec3, bool) {
	tc := c.world.Targetable(c.id)
	tr := c.world.Transform(c.id)
	if tc == nil || tr == nil {
		return targeting.Vec3{}, false
	}
	for _, s := range tc.Sockets {
		if s.Name == name {
			return tr.Pos.Add(s.Offset), true
		}
	}
	return targeting.Vec3{}, false
}

func (c *WorldCandidate) CaptureRadius() float64 {
	if tc := c.world.Targetable(c.id); tc != nil {
		return tc.CaptureRadius
	}
	return 0
}

func (c *WorldCandidate) LostOffsetRadius() float64 {
	if tc := c.world.Targetable(c.id); tc != nil {
		return tc.LostOffset
	}
	return 0
}

// AddSocket appends a named socket at runtime.
func (tc *TargetableComponent) AddSocket(name targeting.SocketName, offset targeting.Vec3) bool {
	for _, s := range tc.Sockets {
		if s.Name == name {
			return false
		}
	}
	tc.Sockets = append(tc.Sockets, SocketDef{Name: name, Offset: offset})
	return true
}

// RemoveSocket drops a socket; a lock holding it fails its next revalidation
// with socket_invalidation.
func (tc *TargetableComponent) RemoveSocket(name targeting.SocketName) bool {
	for i, s := range tc.Sockets {
		if s.Name == name {
			tc.Sockets = append(tc.Sockets[:i], tc.Sockets[i+1:]...)
			return true
		}
	}
	return false
}
