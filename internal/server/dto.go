package server

import (
	"LockOnArena/internal/arena"
	"LockOnArena/internal/targeting"
)

type socketDTO struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type candidateDTO struct {
	ID            int64       `json:"id"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Z             float64     `json:"z"`
	CaptureRadius float64     `json:"capture_radius"`
	LostOffset    float64     `json:"lost_offset"`
	Enabled       bool        `json:"enabled"`
	Sockets       []socketDTO `json:"sockets"`
}

type obstacleDTO struct {
	ID     int64   `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
}

type lockDTO struct {
	CandidateID int64  `json:"candidate_id"`
	Socket      string `json:"socket"`
	Sight       string `json:"sight"`
}

type cameraDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	FOV   float64 `json:"fov"`
}

type modifierEventDTO struct {
	CandidateID int64   `json:"candidate_id"`
	Socket      string  `json:"socket"`
	Modifier    float64 `json:"modifier"`
	Switching   bool    `json:"switching"`
}

type stateDTO struct {
	Type       string             `json:"type"`
	Now        float64            `json:"now"`
	Camera     cameraDTO          `json:"camera"`
	Candidates []candidateDTO     `json:"candidates"`
	Obstacles  []obstacleDTO      `json:"obstacles"`
	Lock       *lockDTO           `json:"lock,omitempty"`
	Modifiers  []modifierEventDTO `json:"modifiers,omitempty"`
	Meta       worldMetaDTO       `json:"meta"`
}

type worldMetaDTO struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// buildState snapshots the room for one player. Callers hold room.Mu.
func buildState(r *arena.Room, p *arena.Player) stateDTO {
	state := stateDTO{
		Type: "state",
		Now:  r.Now,
		Camera: cameraDTO{
			X:     p.Camera.Pos.X,
			Y:     p.Camera.Pos.Y,
			Z:     p.Camera.Pos.Z,
			Yaw:   p.Camera.YawDeg,
			Pitch: p.Camera.PitchDeg,
			FOV:   p.Camera.FOVDeg,
		},
		Meta: worldMetaDTO{W: arena.WorldW, H: arena.WorldH},
	}

	for _, c := range r.Registry.Candidates() {
		wc := c.(*arena.WorldCandidate)
		pos := c.Location()
		dto := candidateDTO{
			ID:            int64(wc.EntityID()),
			X:             pos.X,
			Y:             pos.Y,
			Z:             pos.Z,
			CaptureRadius: c.CaptureRadius(),
			LostOffset:    c.LostOffsetRadius(),
			Enabled:       c.Enabled(),
		}
		for _, name := range c.Sockets() {
			if loc, ok := c.SocketLocation(name); ok {
				dto.Sockets = append(dto.Sockets, socketDTO{
					Name: string(name), X: loc.X, Y: loc.Y, Z: loc.Z,
				})
			}
		}
		state.Candidates = append(state.Candidates, dto)
	}

	r.World.ForEachObstacle(func(id arena.EntityID, pos targeting.Vec3, radius float64) {
		state.Obstacles = append(state.Obstacles, obstacleDTO{
			ID: int64(id), X: pos.X, Y: pos.Y, Z: pos.Z, Radius: radius,
		})
	})

	if info, ok := p.Controller.Target(); ok {
		wc := info.Candidate.(*arena.WorldCandidate)
		state.Lock = &lockDTO{
			CandidateID: int64(wc.EntityID()),
			Socket:      string(info.Socket),
			Sight:       p.Controller.SightState().String(),
		}
	}

	for _, ev := range p.DrainEvents() {
		state.Modifiers = append(state.Modifiers, modifierEventDTO{
			CandidateID: int64(ev.CandidateID),
			Socket:      string(ev.Socket),
			Modifier:    ev.Modifier,
			Switching:   ev.Switching,
		})
	}
	return state
}
