package targeting

import "log"

// ModifierCalculatedHandler receives every (candidate, socket, modifier)
// computed during an evaluation. Diagnostic only: handlers must not call back
// into the controller; a re-entrant find/switch is rejected.
type ModifierCalculatedHandler func(ctx *FindContext, modifier float64)

// Config wires a Controller to its host collaborators.
type Config struct {
	Params   Params
	Registry Registry
	View     ViewpointProvider
	// Trace is required when Params.LineOfSightCheck is enabled.
	Trace TraceProvider
	// Sched is required when periodic tracing is active
	// (LineOfSightCheck && LostTargetDelay > 0).
	Sched Scheduler
	// Owner is excluded from candidate iteration and from traces. Optional.
	Owner Candidate
	// Solver overrides individual scoring capabilities. Zero value uses the
	// defaults throughout.
	Solver Solver
}

// Controller is the per-player selection orchestrator. It decides between a
// find pass (nothing locked) and a switch pass (locked plus directional
// input), re-validates the lock every tick and applies the auto-unlock /
// auto-find policy. Not safe for concurrent use; the host invokes it from its
// simulation tick only.
type Controller struct {
	params   Params
	registry Registry
	view     ViewpointProvider
	trace    TraceProvider
	sched    Scheduler
	owner    Candidate
	solver   Solver

	locked  bool
	target  TargetInfo
	tracker *LineOfSightTracker

	handlers []ModifierCalculatedHandler

	evaluating    bool
	reentryLogged bool
	faultLogged   bool
}

func NewController(cfg Config) *Controller {
	return &Controller{
		params:   SanitizeParams(cfg.Params),
		registry: cfg.Registry,
		view:     cfg.View,
		trace:    cfg.Trace,
		sched:    cfg.Sched,
		owner:    cfg.Owner,
		solver:   cfg.Solver,
	}
}

func (ctrl *Controller) Params() Params { return ctrl.params }

// SetParams swaps the tuning between ticks. Never call mid-evaluation.
func (ctrl *Controller) SetParams(p Params) { ctrl.params = SanitizeParams(p) }

// OnModifierCalculated subscribes a diagnostic handler.
func (ctrl *Controller) OnModifierCalculated(h ModifierCalculatedHandler) {
	ctrl.handlers = append(ctrl.handlers, h)
}

func (ctrl *Controller) fireModifierCalculated(ctx *FindContext, modifier float64) {
	for _, h := range ctrl.handlers {
		h(ctx, modifier)
	}
}

// Target returns the pair the controller currently considers locked.
func (ctrl *Controller) Target() (TargetInfo, bool) { return ctrl.target, ctrl.locked }

// SightState reports the tracker state for diagnostics. SightClear when
// periodic tracing is off or nothing is locked.
func (ctrl *Controller) SightState() SightState {
	if ctrl.tracker == nil {
		return SightClear
	}
	return ctrl.tracker.State()
}

// beginEvaluation rejects re-entrant calls and missing collaborators. Both
// are logged once; the evaluation then yields no-target for the tick, same
// as an empty world on the caller side.
func (ctrl *Controller) beginEvaluation() bool {
	if ctrl.evaluating {
		if !ctrl.reentryLogged {
			log.Printf("targeting: evaluation re-entered from a modifier handler, ignored")
			ctrl.reentryLogged = true
		}
		return false
	}
	if ctrl.registry == nil || ctrl.view == nil ||
		(ctrl.params.LineOfSightCheck && ctrl.trace == nil) {
		if !ctrl.faultLogged {
			log.Printf("targeting: controller missing a required collaborator, returning no target")
			ctrl.faultLogged = true
		}
		return false
	}
	ctrl.evaluating = true
	return true
}

// FindTarget runs a finding pass: no current-target context, finding weight
// profile. The bool result distinguishes "no eligible candidate" from a hit;
// it is never an error.
func (ctrl *Controller) FindTarget(playerInput Vec2) (TargetInfo, bool) {
	if !ctrl.beginEvaluation() {
		return TargetInfo{}, false
	}
	defer func() { ctrl.evaluating = false }()

	ctx := &FindContext{
		View:        ctrl.view.View(),
		PlayerInput: playerInput,
	}
	info, _, ok := ctrl.findBestTarget(ctx)
	return info, ok
}

// SwitchTarget runs a switching pass: same pipeline with the switching weight
// profile and the input-alignment window. The locked pair itself is excluded,
// so the result is always a different (candidate, socket) pair; when nothing
// else qualifies the lock is left unchanged and ok=false.
func (ctrl *Controller) SwitchTarget(playerInput Vec2) (TargetInfo, bool) {
	if !ctrl.locked || (playerInput == Vec2{}) {
		return TargetInfo{}, false
	}
	if !ctrl.beginEvaluation() {
		return TargetInfo{}, false
	}
	defer func() { ctrl.evaluating = false }()

	ctx := &FindContext{
		View:        ctrl.view.View(),
		PlayerInput: playerInput,
		Switching:   true,
	}
	ctx.Current = TargetContext{
		Candidate: ctrl.target.Candidate,
		Socket:    ctrl.target.Socket,
	}
	if loc, ok := ctrl.target.Candidate.SocketLocation(ctrl.target.Socket); ok {
		ctx.Current.WorldLocation = loc
		pos, ok := ctx.View.Project(loc)
		ctx.Current.ScreenPosition = pos
		ctx.Current.ScreenPositionValid = ok
	}

	info, _, ok := ctrl.findBestTarget(ctx)
	return info, ok
}

// Lock records a new captured pair and restarts line-of-sight tracking.
// Periodic tracing only exists while LineOfSightCheck is on and
// LostTargetDelay > 0; otherwise no timer is ever scheduled and line of sight
// is checked inline by the post check during find/switch passes.
func (ctrl *Controller) Lock(info TargetInfo) {
	if ctrl.tracker != nil {
		ctrl.tracker.Reset()
	}
	ctrl.locked = true
	ctrl.target = info
	ctrl.tracker = nil
	if ctrl.params.LineOfSightCheck && ctrl.params.LostTargetDelay > 0 && ctrl.sched != nil {
		ctrl.tracker = NewLineOfSightTracker(ctrl.sched, ctrl.params.LostTargetDelay, nil)
	}
}

// Unlock ends the current lock. The unlock reason decides, through
// AutoFindTargetFlags, whether a fresh finding pass with zero input runs
// immediately; its result is locked and returned. ok=false leaves the
// controller with no target.
func (ctrl *Controller) Unlock(reason UnlockReason) (TargetInfo, bool) {
	if ctrl.tracker != nil {
		ctrl.tracker.Reset()
		ctrl.tracker = nil
	}
	ctrl.locked = false
	ctrl.target = TargetInfo{}

	if reason != UnlockManual && ctrl.params.AutoFindTargetFlags.Has(reason) {
		if info, ok := ctrl.FindTarget(Vec2{}); ok {
			ctrl.Lock(info)
			return info, true
		}
	}
	return TargetInfo{}, false
}

// CanContinueTargeting re-validates the locked pair for this tick. On failure
// the reason names the specific check that tripped; the host is expected to
// call Unlock with it.
func (ctrl *Controller) CanContinueTargeting() (bool, UnlockReason) {
	if !ctrl.locked {
		return false, UnlockManual
	}
	c := ctrl.target.Candidate
	if c == nil || !c.Enabled() {
		return false, UnlockTargetInvalidation
	}
	if !c.CanBeCaptured() {
		return false, UnlockCandidateRejected
	}
	loc, ok := c.SocketLocation(ctrl.target.Socket)
	if !ok {
		return false, UnlockSocketInvalidation
	}

	view := ctrl.view.View()
	lostRef := (c.CaptureRadius() + c.LostOffsetRadius()) * ctrl.params.CaptureRadiusMultiplier
	if c.Location().Sub(view.Pos).Len() > lostRef {
		return false, UnlockOutOfLostDistance
	}

	if ctrl.tracker != nil {
		ctrl.tracker.Observe(ctrl.traceBlocked(c, view.Pos, loc))
		if ctrl.tracker.Expired() {
			return false, UnlockLineOfSightFail
		}
	}
	return true, UnlockManual
}

func (ctrl *Controller) traceBlocked(target Candidate, origin, point Vec3) bool {
	if ctrl.trace == nil {
		return false
	}
	ignore := []Candidate{target}
	if ctrl.owner != nil {
		ignore = append(ignore, ctrl.owner)
	}
	return ctrl.trace.Trace(origin, point, ignore, ctrl.params.TraceChannels)
}
