package arena

import (
	"sort"

	"LockOnArena/internal/targeting"
)

type EntityID int64

type ComponentKey string

const (
	compTransform  ComponentKey = "transform"
	compTargetable ComponentKey = "targetable"
	compObstacle   ComponentKey = "obstacle"
	compPatrol     ComponentKey = "patrol"
)

type Transform struct {
	Pos targeting.Vec3
	Vel targeting.Vec3
}

// SocketDef is a named attachment point, stored as an offset from the entity
// origin.
type SocketDef struct {
	Name   targeting.SocketName
	Offset targeting.Vec3
}

// TargetableComponent makes an entity capturable. CaptureHook, when set,
// backs the candidate's CanBeCaptured answer.
type TargetableComponent struct {
	Sockets       []SocketDef
	CaptureRadius float64
	LostOffset    float64
	Enabled       bool
	CaptureHook   func() bool
}

// ObstacleComponent blocks line-of-sight traces on the given channels.
type ObstacleComponent struct {
	Radius   float64
	Channels targeting.ChannelMask
}

// PatrolComponent moves an entity between waypoints at a fixed speed,
// looping forever.
type PatrolComponent struct {
	Waypoints []targeting.Vec3
	Index     int
	Speed     float64
}

type World struct {
	nextEntity EntityID
	components map[ComponentKey]map[EntityID]any
}

func NewWorld() *World {
	return &World{components: map[ComponentKey]map[EntityID]any{}}
}

func (w *World) NewEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

func (w *World) SetComponent(id EntityID, key ComponentKey, value any) {
	m, ok := w.components[key]
	if !ok {
		m = map[EntityID]any{}
		w.components[key] = m
	}
	m[id] = value
}

func (w *World) GetComponent(id EntityID, key ComponentKey) (any, bool) {
	if m, ok := w.components[key]; ok {
		v, ok := m[id]
		return v, ok
	}
	return nil, false
}

func (w *World) RemoveComponent(id EntityID, key ComponentKey) {
	if m, ok := w.components[key]; ok {
		delete(m, id)
	}
}

func (w *World) DestroyEntity(id EntityID) {
	for _, m := range w.components {
		delete(m, id)
	}
}

// ForEach visits every entity that has all the given components. Iteration
// order is unspecified; callers needing determinism sort the IDs themselves.
func (w *World) ForEach(keys []ComponentKey, fn func(id EntityID)) {
	if len(keys) == 0 {
		return
	}
	base, ok := w.components[keys[0]]
	if !ok {
		return
	}
outer:
	for id := range base {
		for _, key := range keys[1:] {
			if _, ok := w.GetComponent(id, key); !ok {
				continue outer
			}
		}
		fn(id)
	}
}

func (w *World) Transform(id EntityID) *Transform {
	if v, ok := w.GetComponent(id, compTransform); ok {
		if t, ok := v.(*Transform); ok {
			return t
		}
	}
	return nil
}

func (w *World) Targetable(id EntityID) *TargetableComponent {
	if v, ok := w.GetComponent(id, compTargetable); ok {
		if t, ok := v.(*TargetableComponent); ok {
			return t
		}
	}
	return nil
}

func (w *World) Obstacle(id EntityID) *ObstacleComponent {
	if v, ok := w.GetComponent(id, compObstacle); ok {
		if t, ok := v.(*ObstacleComponent); ok {
			return t
		}
	}
	return nil
}

// ForEachObstacle visits every obstacle in ascending entity-ID order.
func (w *World) ForEachObstacle(fn func(id EntityID, pos targeting.Vec3, radius float64)) {
	var ids []EntityID
	w.ForEach([]ComponentKey{compTransform, compObstacle}, func(id EntityID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		tr := w.Transform(id)
		ob := w.Obstacle(id)
		fn(id, tr.Pos, ob.Radius)
	}
}

func (w *World) Patrol(id EntityID) *PatrolComponent {
	if v, ok := w.GetComponent(id, compPatrol); ok {
		if t, ok := v.(*PatrolComponent); ok {
			return t
		}
	}
	return nil
}
