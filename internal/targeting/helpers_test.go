package targeting

// Shared test doubles. The world is Z-up with the camera at the origin
// facing +X unless a test says otherwise.

type fakeCandidate struct {
	name       string
	enabled    bool
	capturable bool
	loc        Vec3
	sockets    []SocketName
	socketLocs map[SocketName]Vec3
	radius     float64
	lostOffset float64
}

func newFakeCandidate(name string, loc Vec3, radius float64) *fakeCandidate {
	return &fakeCandidate{
		name:       name,
		enabled:    true,
		capturable: true,
		loc:        loc,
		sockets:    []SocketName{"root"},
		socketLocs: map[SocketName]Vec3{"root": loc},
		radius:     radius,
	}
}

func (c *fakeCandidate) addSocket(name SocketName, loc Vec3) {
	c.sockets = append(c.sockets, name)
	c.socketLocs[name] = loc
}

func (c *fakeCandidate) Enabled() bool          { return c.enabled }
func (c *fakeCandidate) CanBeCaptured() bool    { return c.capturable }
func (c *fakeCandidate) Location() Vec3         { return c.loc }
func (c *fakeCandidate) Sockets() []SocketName  { return c.sockets }
func (c *fakeCandidate) CaptureRadius() float64 { return c.radius }
func (c *fakeCandidate) LostOffsetRadius() float64 {
	return c.lostOffset
}

func (c *fakeCandidate) SocketLocation(s SocketName) (Vec3, bool) {
	loc, ok := c.socketLocs[s]
	return loc, ok
}

type fakeRegistry struct {
	cands []Candidate
}

func (r *fakeRegistry) RegisterCandidate(c Candidate) bool {
	for _, have := range r.cands {
		if have == c {
			return false
		}
	}
	r.cands = append(r.cands, c)
	return true
}

func (r *fakeRegistry) UnregisterCandidate(c Candidate) bool {
	for i, have := range r.cands {
		if have == c {
			r.cands = append(r.cands[:i], r.cands[i+1:]...)
			return true
		}
	}
	return false
}

func (r *fakeRegistry) Candidates() []Candidate { return r.cands }

type fakeView struct {
	v Viewpoint
}

func (f *fakeView) View() Viewpoint { return f.v }

func testViewpoint() Viewpoint {
	return Viewpoint{
		Forward: Vec3{1, 0, 0},
		Up:      Vec3{0, 0, 1},
		FOVDeg:  90,
		ScreenW: 1000,
		ScreenH: 500,
	}
}

// fakeTrace blocks the segment to any point listed in blocked.
type fakeTrace struct {
	blocked []Vec3
	calls   int
}

func (f *fakeTrace) Trace(origin, target Vec3, ignore []Candidate, channels ChannelMask) bool {
	f.calls++
	for _, b := range f.blocked {
		if target.Sub(b).Len() < 1e-6 {
			return true
		}
	}
	return false
}

// fakeScheduler is a manual-advance clock. Schedule counts every call so
// tests can assert that no timer is ever created.
type fakeScheduler struct {
	now       float64
	timers    []*fakeTimer
	scheduled int
}

type fakeTimer struct {
	at        float64
	fn        func()
	cancelled bool
	fired     bool
}

func (t *fakeTimer) Cancel() { t.cancelled = true }

func (s *fakeScheduler) Schedule(delay float64, fn func()) TimerHandle {
	s.scheduled++
	t := &fakeTimer{at: s.now + delay, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(dt float64) {
	s.now += dt
	for _, t := range s.timers {
		if !t.cancelled && !t.fired && t.at <= s.now {
			t.fired = true
			t.fn()
		}
	}
}
