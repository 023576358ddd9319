package targeting

// SightState is the line-of-sight hysteresis state for the captured socket.
type SightState uint8

const (
	// SightClear - the captured socket is visible.
	SightClear SightState = iota
	// SightOccluded - the socket is blocked and the grace timer is running.
	SightOccluded
)

func (s SightState) String() string {
	if s == SightOccluded {
		return "occluded"
	}
	return "clear"
}

// LineOfSightTracker tolerates transient occlusion of the captured socket. A
// blocked trace starts a one-shot grace timer; a clear trace before it fires
// cancels it. If the timer elapses the tracker reports expiration exactly
// once, which ends the current lock. State is reset whenever the locked
// target changes.
type LineOfSightTracker struct {
	sched    Scheduler
	delay    float64
	onExpire func()

	state   SightState
	timer   TimerHandle
	expired bool
}

// NewLineOfSightTracker requires delaySeconds > 0; periodic tracking with a
// non-positive delay is disabled at the controller level. onExpire may be nil.
func NewLineOfSightTracker(sched Scheduler, delaySeconds float64, onExpire func()) *LineOfSightTracker {
	return &LineOfSightTracker{
		sched:    sched,
		delay:    delaySeconds,
		onExpire: onExpire,
	}
}

// Observe feeds one trace result into the state machine. blocked=true is a
// Hit (occluded), blocked=false a Miss (clear line).
func (t *LineOfSightTracker) Observe(blocked bool) {
	if t.expired {
		return
	}
	switch t.state {
	case SightClear:
		if blocked {
			t.state = SightOccluded
			t.timer = t.sched.Schedule(t.delay, t.expire)
		}
	case SightOccluded:
		if !blocked {
			t.state = SightClear
			t.cancelTimer()
		}
	}
}

func (t *LineOfSightTracker) expire() {
	if t.state != SightOccluded || t.expired {
		return
	}
	t.expired = true
	t.timer = nil
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Reset cancels any running timer and returns to SightClear.
func (t *LineOfSightTracker) Reset() {
	t.cancelTimer()
	t.state = SightClear
	t.expired = false
}

func (t *LineOfSightTracker) cancelTimer() {
	if t.timer != nil {
		t.timer.Cancel()
		t.timer = nil
	}
}

func (t *LineOfSightTracker) State() SightState { return t.state }

// Expired reports whether the grace period elapsed for the current lock.
func (t *LineOfSightTracker) Expired() bool { return t.expired }
