package arena

import (
	"math"
	"sync"
	"time"

	"LockOnArena/internal/targeting"
)

// playerEventCap bounds the per-player diagnostics buffer between pushes.
const playerEventCap = 256

// ModifierEvent is one "modifier calculated" notification, copied out of the
// evaluation context for the diagnostics stream.
type ModifierEvent struct {
	CandidateID EntityID
	Socket      targeting.SocketName
	Modifier    float64
	Switching   bool
}

// CameraRig is a player's viewpoint state: position plus yaw/pitch in a Z-up
// world. It produces the orthonormal basis the projection needs.
type CameraRig struct {
	Pos      targeting.Vec3
	YawDeg   float64
	PitchDeg float64
	FOVDeg   float64
	ScreenW  float64
	ScreenH  float64
}

func (c *CameraRig) View() targeting.Viewpoint {
	yaw := c.YawDeg * math.Pi / 180
	pitch := c.PitchDeg * math.Pi / 180
	forward := targeting.Vec3{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(yaw) * math.Cos(pitch),
		Z: math.Sin(pitch),
	}
	right := targeting.Vec3{X: 0, Y: 0, Z: 1}.Cross(forward).Normalized()
	up := forward.Cross(right)
	return targeting.Viewpoint{
		Pos:     c.Pos,
		Forward: forward,
		Up:      up,
		FOVDeg:  c.FOVDeg,
		ScreenW: c.ScreenW,
		ScreenH: c.ScreenH,
	}
}

type Player struct {
	ID   string
	Name string

	Camera     CameraRig
	Controller *targeting.Controller

	// Events buffers modifier diagnostics until the next state push.
	Events []ModifierEvent

	pendingSwitch targeting.Vec2
	hasPending    bool
}

// ToggleLock releases a held lock or runs a finding pass with zero input.
func (p *Player) ToggleLock() {
	if _, locked := p.Controller.Target(); locked {
		p.Controller.Unlock(targeting.UnlockManual)
		return
	}
	if info, ok := p.Controller.FindTarget(targeting.Vec2{}); ok {
		p.Controller.Lock(info)
	}
}

// QueueSwitch stores directional input for the next tick. Repeated input
// within one tick keeps the latest direction.
func (p *Player) QueueSwitch(dir targeting.Vec2) {
	if (dir == targeting.Vec2{}) {
		return
	}
	p.pendingSwitch = dir
	p.hasPending = true
}

func (p *Player) recordModifier(ctx *targeting.FindContext, modifier float64) {
	if len(p.Events) >= playerEventCap {
		return
	}
	wc, ok := ctx.Iterator.Candidate.(*WorldCandidate)
	if !ok {
		return
	}
	p.Events = append(p.Events, ModifierEvent{
		CandidateID: wc.EntityID(),
		Socket:      ctx.Iterator.Socket,
		Modifier:    modifier,
		Switching:   ctx.Switching,
	})
}

// DrainEvents hands the buffered diagnostics to the caller and resets the
// buffer.
func (p *Player) DrainEvents() []ModifierEvent {
	out := p.Events
	p.Events = nil
	return out
}

type Room struct {
	ID       string
	Now      float64
	World    *World
	Registry *Registry
	Trace    *WorldTrace
	Timers   *TimerQueue
	Params   targeting.Params
	Players  map[string]*Player
	Mu       sync.Mutex

	loopOnce sync.Once
	stopOnce sync.Once
	stop     chan struct{}
}

func NewRoom(id string, params targeting.Params) *Room {
	world := NewWorld()
	return &Room{
		ID:       id,
		World:    world,
		Registry: NewRegistry(world),
		Trace:    NewWorldTrace(world),
		Timers:   NewTimerQueue(),
		Params:   params,
		Players:  map[string]*Player{},
		stop:     make(chan struct{}),
	}
}

// StartLoop drives Tick at SimHz until StopLoop. Safe to call more than once.
func (r *Room) StartLoop() {
	r.loopOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(time.Duration(float64(time.Second) / SimHz))
			defer ticker.Stop()
			for {
				select {
				case <-r.stop:
					return
				case <-ticker.C:
					r.Tick()
				}
			}
		}()
	})
}

func (r *Room) StopLoop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// AddPlayer wires a fresh selection controller to the room's collaborators.
func (r *Room) AddPlayer(id, name string) *Player {
	p := &Player{
		ID:   id,
		Name: name,
		Camera: CameraRig{
			Pos:     targeting.Vec3{X: WorldW / 2, Y: WorldH / 2, Z: 60},
			FOVDeg:  90,
			ScreenW: 1280,
			ScreenH: 720,
		},
	}
	p.Controller = targeting.NewController(targeting.Config{
		Params:   r.Params,
		Registry: r.Registry,
		View:     &p.Camera,
		Trace:    r.Trace,
		Sched:    r.Timers,
	})
	p.Controller.OnModifierCalculated(p.recordModifier)
	r.Players[id] = p
	return p
}

func (r *Room) RemovePlayer(id string) {
	delete(r.Players, id)
}

// Tick advances the room by one fixed step: move patrols, fire due timers,
// then re-evaluate every player's lock. Candidates only change between
// evaluations, never during one.
func (r *Room) Tick() {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.Now += Dt

	updatePatrols(r, Dt)
	r.Timers.AdvanceTo(r.Now)

	for _, p := range r.Players {
		if _, locked := p.Controller.Target(); locked {
			if ok, reason := p.Controller.CanContinueTargeting(); !ok {
				p.Controller.Unlock(reason)
			}
		}
		if p.hasPending {
			if info, ok := p.Controller.SwitchTarget(p.pendingSwitch); ok {
				p.Controller.Lock(info)
			}
			p.hasPending = false
		}
	}
}

func updatePatrols(r *Room, dt float64) {
	r.World.ForEach([]ComponentKey{compTransform, compPatrol}, func(id EntityID) {
		tr := r.World.Transform(id)
		pat := r.World.Patrol(id)
		if tr == nil || pat == nil || len(pat.Waypoints) == 0 {
			return
		}
		target := pat.Waypoints[pat.Index%len(pat.Waypoints)]
		dir := target.Sub(tr.Pos)
		dist := dir.Len()
		if dist <= PatrolStopEps || dist <= pat.Speed*dt {
			tr.Pos = target
			tr.Vel = targeting.Vec3{}
			pat.Index = (pat.Index + 1) % len(pat.Waypoints)
			return
		}
		tr.Vel = dir.Scale(pat.Speed / dist)
		tr.Pos = tr.Pos.Add(tr.Vel.Scale(dt))
	})
}

// SpawnTargetable creates a capturable entity and registers it.
func (r *Room) SpawnTargetable(pos targeting.Vec3, radius, lostOffset float64, sockets []SocketDef) EntityID {
	id := r.World.NewEntity()
	r.World.SetComponent(id, compTransform, &Transform{Pos: pos})
	r.World.SetComponent(id, compTargetable, &TargetableComponent{
		Sockets:       sockets,
		CaptureRadius: radius,
		LostOffset:    lostOffset,
		Enabled:       true,
	})
	r.Registry.Register(id)
	return id
}

// DespawnTargetable unregisters and destroys an entity. A lock held on it
// fails its next revalidation with target_invalidation.
func (r *Room) DespawnTargetable(id EntityID) {
	r.Registry.Unregister(id)
	r.World.DestroyEntity(id)
}

func (r *Room) SpawnObstacle(pos targeting.Vec3, radius float64, channels targeting.ChannelMask) EntityID {
	id := r.World.NewEntity()
	r.World.SetComponent(id, compTransform, &Transform{Pos: pos})
	r.World.SetComponent(id, compObstacle, &ObstacleComponent{Radius: radius, Channels: channels})
	return id
}

func (r *Room) AddPatrol(id EntityID, waypoints []targeting.Vec3, speed float64) {
	r.World.SetComponent(id, compPatrol, &PatrolComponent{Waypoints: waypoints, Speed: speed})
}

type Hub struct {
	Rooms  map[string]*Room
	Params targeting.Params
	Mu     sync.Mutex
}

func NewHub(params targeting.Params) *Hub {
	return &Hub{Rooms: map[string]*Room{}, Params: params}
}

// GetRoom returns an existing room or creates and seeds a fresh one.
func (h *Hub) GetRoom(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	r, ok := h.Rooms[id]
	if !ok {
		r = NewRoom(id, h.Params)
		SeedArena(r)
		h.Rooms[id] = r
	}
	return r
}

func (h *Hub) CleanupEmptyRooms() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		r.Mu.Lock()
		empty := len(r.Players) == 0
		r.Mu.Unlock()
		if empty {
			r.StopLoop()
			delete(h.Rooms, id)
		}
	}
}
