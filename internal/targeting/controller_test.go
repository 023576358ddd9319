package targeting

import (
	"math"
	"testing"
)

// coneParams is the simplest profile: capture cone wide open, distance only.
func coneParams() Params {
	p := DefaultParams()
	p.ScreenCapture = false
	p.CaptureAngle = 180
	p.DistanceWeight = 1
	p.AngleWeightWhileFinding = 0
	p.AngleWeightWhileSwitching = 0
	p.PlayerInputWeight = 0
	p.LineOfSightCheck = false
	p.CaptureRadiusMultiplier = 1
	return p
}

func screenParams() Params {
	p := coneParams()
	p.ScreenCapture = true
	p.FindingScreenOffset = Vec2{}
	p.SwitchingScreenOffset = Vec2{}
	p.AngleRange = 60
	return p
}

func newTestController(reg Registry, p Params, trace TraceProvider, sched Scheduler) *Controller {
	return NewController(Config{
		Params:   p,
		Registry: reg,
		View:     &fakeView{v: testViewpoint()},
		Trace:    trace,
		Sched:    sched,
	})
}

func TestFindTargetNoCandidates(t *testing.T) {
	ctrl := newTestController(&fakeRegistry{}, coneParams(), nil, nil)
	if _, ok := ctrl.FindTarget(Vec2{}); ok {
		t.Errorf("empty registry produced a target")
	}
}

func TestFindTargetPureDistanceModifier(t *testing.T) {
	reg := &fakeRegistry{}
	reg.RegisterCandidate(newFakeCandidate("a", Vec3{100, 0, 0}, 400))

	ctrl := newTestController(reg, coneParams(), nil, nil)
	var got []float64
	ctrl.OnModifierCalculated(func(ctx *FindContext, m float64) {
		got = append(got, m)
	})

	info, ok := ctrl.FindTarget(Vec2{})
	if !ok {
		t.Fatalf("expected a target")
	}
	if info.Socket != "root" {
		t.Errorf("expected socket root, got %q", info.Socket)
	}
	if len(got) != 1 || math.Abs(got[0]-0.25) > 1e-9 {
		t.Errorf("expected single modifier 0.25 (pure distance term), got %v", got)
	}
}

func TestFindTargetGlobalMinimumRegardlessOfOrder(t *testing.T) {
	// Distances 120 and 80 over a 400 reference give modifiers 0.3 and 0.2.
	a := newFakeCandidate("a", Vec3{120, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{80, 0, 0}, 400)

	for _, order := range [][]Candidate{{a, b}, {b, a}} {
		reg := &fakeRegistry{cands: order}
		ctrl := newTestController(reg, coneParams(), nil, nil)

		var all []float64
		ctrl.OnModifierCalculated(func(ctx *FindContext, m float64) {
			all = append(all, m)
		})

		info, ok := ctrl.FindTarget(Vec2{})
		if !ok {
			t.Fatalf("expected a target")
		}
		if info.Candidate != b {
			t.Errorf("order %v: expected candidate b (modifier 0.2) to win", order)
		}
		for _, m := range all {
			if m < 0.2-1e-9 {
				t.Errorf("returned modifier is not the global minimum: saw %v", m)
			}
		}
	}
}

func TestPostCheckFailureYieldsNextBestCandidate(t *testing.T) {
	a := newFakeCandidate("a", Vec3{80, 0, 0}, 400)  // best, but occluded
	b := newFakeCandidate("b", Vec3{120, 0, 0}, 400) // clear

	p := coneParams()
	p.LineOfSightCheck = true
	trace := &fakeTrace{blocked: []Vec3{{80, 0, 0}}}

	for _, order := range [][]Candidate{{a, b}, {b, a}} {
		reg := &fakeRegistry{cands: order}
		ctrl := newTestController(reg, p, trace, nil)
		info, ok := ctrl.FindTarget(Vec2{})
		if !ok {
			t.Fatalf("expected a fallback target")
		}
		if info.Candidate != b {
			t.Errorf("occluded best candidate should contribute no socket; want b, got %v", info.Candidate)
		}
	}
}

func TestPostCheckSkippedForNonImprovingSocket(t *testing.T) {
	a := newFakeCandidate("a", Vec3{80, 0, 0}, 400)
	a.addSocket("far", Vec3{200, 0, 0}) // worse modifier, post check must not run

	p := coneParams()
	p.LineOfSightCheck = true
	trace := &fakeTrace{}

	reg := &fakeRegistry{cands: []Candidate{a}}
	ctrl := newTestController(reg, p, trace, nil)
	if _, ok := ctrl.FindTarget(Vec2{}); !ok {
		t.Fatalf("expected a target")
	}
	if trace.calls != 1 {
		t.Errorf("expensive check ran %d times, want 1 (improving socket only)", trace.calls)
	}
}

func TestSwitchNeverReturnsLockedPair(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{100, 60, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a, b}}

	ctrl := newTestController(reg, screenParams(), nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	// Screen right is +Y world here; input points right, toward b.
	info, ok := ctrl.SwitchTarget(Vec2{1, 0})
	if !ok {
		t.Fatalf("expected a switch result")
	}
	if info.Candidate == a && info.Socket == "root" {
		t.Errorf("switch returned the locked pair")
	}
	if info.Candidate != b {
		t.Errorf("expected b, got %v", info.Candidate)
	}
}

func TestSwitchWithNoAlternativeReturnsNone(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a}}

	ctrl := newTestController(reg, screenParams(), nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	if _, ok := ctrl.SwitchTarget(Vec2{1, 0}); ok {
		t.Errorf("switch found a target with only the locked pair registered")
	}
	if tgt, locked := ctrl.Target(); !locked || tgt.Candidate != a {
		t.Errorf("failed switch must leave the lock unchanged")
	}
}

func TestSwitchAngleRangeExcludesOffWindowSockets(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{100, 60, 0}, 400)
	// c sits opposite the input direction and closer; the window must still
	// exclude it.
	c := newFakeCandidate("c", Vec3{100, -30, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a, b, c}}

	ctrl := newTestController(reg, screenParams(), nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	info, ok := ctrl.SwitchTarget(Vec2{1, 0})
	if !ok {
		t.Fatalf("expected a switch result")
	}
	if info.Candidate != b {
		t.Errorf("off-window candidate was selected over the aligned one")
	}
}

func TestSwitchPostCheckFailureSelectsNextBest(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{100, 60, 0}, 400)  // aligned, occluded
	c := newFakeCandidate("c", Vec3{100, 80, 0}, 400) // aligned, clear

	p := screenParams()
	p.LineOfSightCheck = true
	trace := &fakeTrace{blocked: []Vec3{{100, 60, 0}}}

	reg := &fakeRegistry{cands: []Candidate{a, b, c}}
	ctrl := newTestController(reg, p, trace, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	info, ok := ctrl.SwitchTarget(Vec2{1, 0})
	if !ok {
		t.Fatalf("expected a switch result")
	}
	if info.Candidate != c {
		t.Errorf("expected next-best candidate c after post check failure, got %v", info.Candidate)
	}
}

func TestNoTimerScheduledWhenDelayNonPositive(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a}}

	p := coneParams()
	p.LineOfSightCheck = true
	p.LostTargetDelay = 0
	trace := &fakeTrace{blocked: []Vec3{{100, 0, 0}}}
	sched := &fakeScheduler{}

	ctrl := newTestController(reg, p, trace, sched)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	for i := 0; i < 10; i++ {
		if ok, _ := ctrl.CanContinueTargeting(); !ok {
			t.Fatalf("tick %d: lock dropped without periodic tracing", i)
		}
		sched.Advance(1.0)
	}
	if sched.scheduled != 0 {
		t.Errorf("LostTargetDelay <= 0 scheduled %d timers, want 0", sched.scheduled)
	}
}

func TestLineOfSightExpiryEndsLock(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{150, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a, b}}

	p := coneParams()
	p.LineOfSightCheck = true
	p.LostTargetDelay = 2
	p.AutoFindTargetFlags = UnlockReasonSet(UnlockLineOfSightFail)
	trace := &fakeTrace{blocked: []Vec3{{100, 0, 0}}}
	sched := &fakeScheduler{}

	ctrl := newTestController(reg, p, trace, sched)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	if ok, _ := ctrl.CanContinueTargeting(); !ok {
		t.Fatalf("grace period should keep the lock alive")
	}
	if ctrl.SightState() != SightOccluded {
		t.Fatalf("expected occluded state while timer runs")
	}

	sched.Advance(2.0)
	ok, reason := ctrl.CanContinueTargeting()
	if ok {
		t.Fatalf("lock survived an expired grace period")
	}
	if reason != UnlockLineOfSightFail {
		t.Fatalf("expected line_of_sight_fail, got %v", reason)
	}

	// The flag is set, so unlocking re-acquires; only b is visible.
	info, ok := ctrl.Unlock(reason)
	if !ok || info.Candidate != b {
		t.Errorf("expected auto-find to land on b, got %v ok=%v", info.Candidate, ok)
	}
}

func TestAutoFindOnTargetInvalidation(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{150, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a, b}}

	p := coneParams()
	p.AutoFindTargetFlags = UnlockReasonSet(UnlockTargetInvalidation)

	ctrl := newTestController(reg, p, nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	a.enabled = false
	ok, reason := ctrl.CanContinueTargeting()
	if ok || reason != UnlockTargetInvalidation {
		t.Fatalf("expected target_invalidation, got ok=%v reason=%v", ok, reason)
	}

	info, ok := ctrl.Unlock(reason)
	if !ok || info.Candidate != b {
		t.Fatalf("expected immediate re-acquire of b, got ok=%v", ok)
	}
	if tgt, locked := ctrl.Target(); !locked || tgt.Candidate != b {
		t.Errorf("controller should consider b locked after auto-find")
	}
}

func TestNoAutoFindWhenFlagDisabled(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	b := newFakeCandidate("b", Vec3{150, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a, b}}

	p := coneParams()
	p.AutoFindTargetFlags = 0

	ctrl := newTestController(reg, p, nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})
	a.enabled = false

	if _, ok := ctrl.Unlock(UnlockTargetInvalidation); ok {
		t.Errorf("auto-find ran with its flag disabled")
	}
	if _, locked := ctrl.Target(); locked {
		t.Errorf("controller still locked after unlock")
	}
}

func TestManualUnlockNeverAutoFinds(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a}}

	p := coneParams()
	p.AutoFindTargetFlags = AllUnlockReasons

	ctrl := newTestController(reg, p, nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})
	if _, ok := ctrl.Unlock(UnlockManual); ok {
		t.Errorf("manual unlock re-acquired a target")
	}
}

func TestUnlockReasonsFromContinueChecks(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	a.lostOffset = 100
	reg := &fakeRegistry{cands: []Candidate{a}}
	ctrl := newTestController(reg, coneParams(), nil, nil)
	ctrl.Lock(TargetInfo{Candidate: a, Socket: "root"})

	// Inside capture radius: fine.
	if ok, _ := ctrl.CanContinueTargeting(); !ok {
		t.Fatalf("lock should hold inside the capture radius")
	}

	// Between capture radius and lost distance: hysteresis keeps the lock.
	a.loc = Vec3{450, 0, 0}
	a.socketLocs["root"] = a.loc
	if ok, _ := ctrl.CanContinueTargeting(); !ok {
		t.Errorf("lock dropped inside the lost-offset band")
	}

	// Beyond the lost distance.
	a.loc = Vec3{501, 0, 0}
	a.socketLocs["root"] = a.loc
	if ok, reason := ctrl.CanContinueTargeting(); ok || reason != UnlockOutOfLostDistance {
		t.Errorf("expected out_of_lost_distance, got ok=%v reason=%v", ok, reason)
	}
	a.loc = Vec3{100, 0, 0}
	a.socketLocs["root"] = a.loc

	// Host-side capture hook.
	a.capturable = false
	if ok, reason := ctrl.CanContinueTargeting(); ok || reason != UnlockCandidateRejected {
		t.Errorf("expected candidate_rejected, got ok=%v reason=%v", ok, reason)
	}
	a.capturable = true

	// Captured socket removed at runtime.
	delete(a.socketLocs, "root")
	if ok, reason := ctrl.CanContinueTargeting(); ok || reason != UnlockSocketInvalidation {
		t.Errorf("expected socket_invalidation, got ok=%v reason=%v", ok, reason)
	}
}

func TestReentrantEvaluationRejected(t *testing.T) {
	a := newFakeCandidate("a", Vec3{100, 0, 0}, 400)
	reg := &fakeRegistry{cands: []Candidate{a}}
	ctrl := newTestController(reg, coneParams(), nil, nil)

	nestedOK := false
	ctrl.OnModifierCalculated(func(ctx *FindContext, m float64) {
		_, nestedOK = ctrl.FindTarget(Vec2{})
	})

	info, ok := ctrl.FindTarget(Vec2{})
	if !ok || info.Candidate != a {
		t.Fatalf("outer evaluation should succeed")
	}
	if nestedOK {
		t.Errorf("nested evaluation from a handler returned a target")
	}
}

func TestMissingCollaboratorYieldsNoTarget(t *testing.T) {
	ctrl := NewController(Config{Params: coneParams()})
	if _, ok := ctrl.FindTarget(Vec2{}); ok {
		t.Errorf("controller without collaborators returned a target")
	}

	// Line of sight enabled but no trace provider.
	reg := &fakeRegistry{cands: []Candidate{newFakeCandidate("a", Vec3{100, 0, 0}, 400)}}
	p := coneParams()
	p.LineOfSightCheck = true
	ctrl = newTestController(reg, p, nil, nil)
	if _, ok := ctrl.FindTarget(Vec2{}); ok {
		t.Errorf("missing trace provider with line of sight enabled returned a target")
	}
}
