package arena

import "LockOnArena/internal/targeting"

// SeedArena populates a fresh room with a small demo scene: patrolling drones
// with head and core sockets, plus pillars that break line of sight.
func SeedArena(r *Room) {
	cx, cy := WorldW/2, WorldH/2

	drones := []struct {
		pos    targeting.Vec3
		patrol []targeting.Vec3
	}{
		{
			pos: targeting.Vec3{X: cx + 300, Y: cy, Z: 0},
			patrol: []targeting.Vec3{
				{X: cx + 300, Y: cy - 200, Z: 0},
				{X: cx + 300, Y: cy + 200, Z: 0},
			},
		},
		{
			pos: targeting.Vec3{X: cx - 250, Y: cy + 150, Z: 0},
			patrol: []targeting.Vec3{
				{X: cx - 250, Y: cy + 150, Z: 0},
				{X: cx - 450, Y: cy + 150, Z: 0},
			},
		},
		{
			pos: targeting.Vec3{X: cx, Y: cy + 400, Z: 0},
			patrol: []targeting.Vec3{
				{X: cx - 150, Y: cy + 400, Z: 0},
				{X: cx + 150, Y: cy + 400, Z: 0},
			},
		},
	}

	sockets := []SocketDef{
		{Name: "core", Offset: targeting.Vec3{Z: 30}},
		{Name: "head", Offset: targeting.Vec3{Z: 80}},
	}
	for _, d := range drones {
		id := r.SpawnTargetable(d.pos, DefaultCaptureRadius, DefaultLostOffset, append([]SocketDef(nil), sockets...))
		if len(d.patrol) > 0 {
			r.AddPatrol(id, d.patrol, PatrolSpeed)
		}
	}

	pillars := []targeting.Vec3{
		{X: cx + 150, Y: cy - 80, Z: 40},
		{X: cx - 120, Y: cy + 90, Z: 40},
	}
	for _, pos := range pillars {
		r.SpawnObstacle(pos, 45, targeting.ChannelWorldStatic)
	}
}
