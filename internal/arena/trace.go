package arena

import "LockOnArena/internal/targeting"

// WorldTrace is the room's occlusion test: a segment against every obstacle
// sphere whose channels intersect the requested mask. Entities behind ignored
// candidates never block, so a target cannot occlude itself and the owner
// cannot block its own view.
type WorldTrace struct {
	world *World
}

func NewWorldTrace(world *World) *WorldTrace { return &WorldTrace{world: world} }

func (t *WorldTrace) Trace(origin, target targeting.Vec3, ignore []targeting.Candidate, channels targeting.ChannelMask) bool {
	if channels == 0 {
		return false
	}
	blocked := false
	t.world.ForEach([]ComponentKey{compObstacle, compTransform}, func(id EntityID) {
		if blocked {
			return
		}
		ob := t.world.Obstacle(id)
		tr := t.world.Transform(id)
		if ob == nil || tr == nil || !channels.Has(ob.Channels) {
			return
		}
		for _, ig := range ignore {
			if wc, ok := ig.(*WorldCandidate); ok && wc.id == id {
				return
			}
		}
		if segmentHitsSphere(origin, target, tr.Pos, ob.Radius) {
			blocked = true
		}
	})
	return blocked
}

// segmentHitsSphere reports whether the closest point of the segment to the
// sphere center lies inside the sphere.
func segmentHitsSphere(a, b, center targeting.Vec3, radius float64) bool {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	t := 0.0
	if lenSq > 0 {
		t = targeting.Clamp(center.Sub(a).Dot(ab)/lenSq, 0, 1)
	}
	closest := a.Add(ab.Scale(t))
	return center.Sub(closest).Len() <= radius
}
