package targeting

// SocketName identifies an attachment point on a candidate.
type SocketName string

// Candidate is implemented by the host for every targetable entity. The core
// holds candidate references only for the duration of a single evaluation and
// never mutates them.
type Candidate interface {
	// Enabled reports whether the entity is currently valid and targetable at
	// all. A locked candidate turning disabled invalidates the lock.
	Enabled() bool

	// CanBeCaptured is the host-side eligibility hook. Returning false rejects
	// the candidate during finding/switching and invalidates an existing lock
	// with UnlockCandidateRejected.
	CanBeCaptured() bool

	// Location is the entity origin, used for radius checks.
	Location() Vec3

	// Sockets returns the attachment points, stable within one evaluation.
	Sockets() []SocketName

	// SocketLocation resolves a socket to its world position. ok=false means
	// the socket no longer exists.
	SocketLocation(SocketName) (Vec3, bool)

	// CaptureRadius is the maximum distance at which this entity can be
	// captured, before the global multiplier.
	CaptureRadius() float64

	// LostOffsetRadius extends the capture radius for an already locked
	// entity, so a target does not flicker in and out right at the edge.
	LostOffsetRadius() float64
}

// Registry tracks the candidates that currently exist. Register/Unregister
// are idempotent and report whether a change occurred. Candidates returns an
// order that is unspecified but stable for one call.
type Registry interface {
	RegisterCandidate(Candidate) bool
	UnregisterCandidate(Candidate) bool
	Candidates() []Candidate
}

// TargetInfo identifies a captured (candidate, socket) pair.
type TargetInfo struct {
	Candidate Candidate
	Socket    SocketName
}

// ChannelMask selects which obstacle channels a line-of-sight trace collides
// with. Zero traces nothing.
type ChannelMask uint32

const (
	ChannelWorldStatic ChannelMask = 1 << iota
	ChannelWorldDynamic
	ChannelPawn
)

func (m ChannelMask) Has(c ChannelMask) bool { return m&c != 0 }

// TraceProvider is the host's synchronous occlusion test. It reports true when
// the segment from origin to target is blocked by an obstacle on any of the
// given channels. Entities in ignore never block (the target itself and the
// requesting owner).
type TraceProvider interface {
	Trace(origin, target Vec3, ignore []Candidate, channels ChannelMask) bool
}

// TimerHandle cancels a pending scheduled callback. Cancel is idempotent and
// safe after the callback has fired.
type TimerHandle interface {
	Cancel()
}

// Scheduler is the host's delayed one-shot callback facility. Callbacks fire
// from the host's simulation tick, never concurrently with an evaluation.
type Scheduler interface {
	Schedule(delaySeconds float64, fn func()) TimerHandle
}

// ViewpointProvider yields the current camera state on demand.
type ViewpointProvider interface {
	View() Viewpoint
}
