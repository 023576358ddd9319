package targeting

import "testing"

func TestSightTrackerHitThenMissCancelsTimer(t *testing.T) {
	sched := &fakeScheduler{}
	expirations := 0
	tr := NewLineOfSightTracker(sched, 2.0, func() { expirations++ })

	tr.Observe(true)
	if tr.State() != SightOccluded {
		t.Fatalf("expected occluded after a hit, got %v", tr.State())
	}
	sched.Advance(1.0)
	tr.Observe(false)
	if tr.State() != SightClear {
		t.Fatalf("expected clear after a miss, got %v", tr.State())
	}
	// Let the cancelled deadline pass.
	sched.Advance(5.0)
	if expirations != 0 {
		t.Errorf("cancelled timer still expired %d time(s)", expirations)
	}
	if tr.Expired() {
		t.Errorf("tracker reports expired after a miss within the delay")
	}
}

func TestSightTrackerSustainedHitExpiresOnce(t *testing.T) {
	sched := &fakeScheduler{}
	expirations := 0
	tr := NewLineOfSightTracker(sched, 2.0, func() { expirations++ })

	tr.Observe(true)
	sched.Advance(1.0)
	tr.Observe(true) // still blocked, must not restart the countdown
	sched.Advance(1.0)
	sched.Advance(5.0)

	if expirations != 1 {
		t.Fatalf("expected exactly one expiration, got %d", expirations)
	}
	if !tr.Expired() {
		t.Errorf("tracker should report expired")
	}
	if sched.scheduled != 1 {
		t.Errorf("sustained occlusion scheduled %d timers, want 1", sched.scheduled)
	}
}

func TestSightTrackerResetClearsEverything(t *testing.T) {
	sched := &fakeScheduler{}
	tr := NewLineOfSightTracker(sched, 2.0, nil)

	tr.Observe(true)
	tr.Reset()
	sched.Advance(10.0)
	if tr.Expired() || tr.State() != SightClear {
		t.Errorf("reset tracker should be clear and unexpired")
	}

	// A fresh occlusion after reset runs a fresh countdown.
	tr.Observe(true)
	sched.Advance(2.0)
	if !tr.Expired() {
		t.Errorf("occlusion after reset should expire normally")
	}
}
