package targeting

import "math"

// Solver is the overridable part of the scoring pipeline. Every field is
// optional; a nil capability falls back to the documented default. This lets a
// host replace one step without reimplementing the others.
type Solver struct {
	// IsEligibleCustom runs once per candidate after the cheap structural
	// checks. Default: the candidate origin must be within
	// CaptureRadius * CaptureRadiusMultiplier of the viewpoint.
	IsEligibleCustom func(ctx *FindContext, c Candidate) bool

	// ComputeModifier scores the socket in ctx.Iterator, lower is better.
	// Default: DistanceWeight*normalizedDistance + angleWeight*angle/180
	// + PlayerInputWeight*inputDelta/180 (input term only while switching).
	ComputeModifier func(ctx *FindContext) float64

	// PostCheck runs only for a socket that improved on the candidate's best
	// modifier, so expensive work is skipped for non-improving sockets.
	// Default: line-of-sight trace when LineOfSightCheck is enabled.
	PostCheck func(ctx *FindContext) bool
}

// targetModifier pairs a candidate's best socket with its score. The sentinel
// math.MaxFloat64 is only ever overwritten by a strictly smaller value.
type targetModifier struct {
	info     TargetInfo
	modifier float64
}

// isTargetable covers the structural checks: the candidate exists, is
// enabled, is not the controller's owner, passes its own capture hook and has
// at least one socket.
func (ctrl *Controller) isTargetable(c Candidate) bool {
	if c == nil || !c.Enabled() {
		return false
	}
	if ctrl.owner != nil && c == ctrl.owner {
		return false
	}
	if !c.CanBeCaptured() {
		return false
	}
	return len(c.Sockets()) > 0
}

func (ctrl *Controller) isEligibleCustom(ctx *FindContext, c Candidate) bool {
	if ctrl.solver.IsEligibleCustom != nil {
		return ctrl.solver.IsEligibleCustom(ctx, c)
	}
	ref := c.CaptureRadius() * ctrl.params.CaptureRadiusMultiplier
	return c.Location().Sub(ctx.View.Pos).Len() <= ref
}

func (ctrl *Controller) computeModifier(ctx *FindContext) float64 {
	if ctrl.solver.ComputeModifier != nil {
		return ctrl.solver.ComputeModifier(ctx)
	}
	p := &ctrl.params
	it := &ctx.Iterator

	ref := it.Candidate.CaptureRadius() * p.CaptureRadiusMultiplier
	mod := p.DistanceWeight * NormalizedDistance(ctx.View.Pos, it.WorldLocation, ref)

	angleWeight := p.AngleWeightWhileFinding
	if ctx.Switching {
		angleWeight = p.AngleWeightWhileSwitching
	}
	if angleWeight > 0 {
		angle := AngleFromForward(ctx.View, it.WorldLocation, p.ViewYawOffsetDeg, p.ViewPitchOffsetDeg)
		mod += angleWeight * angle / 180
	}

	if ctx.Switching && p.PlayerInputWeight > 0 &&
		ctx.Current.ScreenPositionValid && it.ScreenPositionValid {
		delta := ScreenDeltaAngle(ctx.Current.ScreenPosition, it.ScreenPosition, ctx.PlayerInput)
		mod += p.PlayerInputWeight * delta / 180
	}
	return mod
}

func (ctrl *Controller) postCheck(ctx *FindContext) bool {
	if ctrl.solver.PostCheck != nil {
		return ctrl.solver.PostCheck(ctx)
	}
	if !ctrl.params.LineOfSightCheck {
		return true
	}
	return !ctrl.traceBlocked(ctx.Iterator.Candidate, ctx.View.Pos, ctx.Iterator.WorldLocation)
}

// preModifierCheck decides whether a socket is worth scoring at all: the
// currently captured pair is never a switch result, screen-capture mode
// requires a valid projection inside the narrowed bounds, cone mode requires
// the capture angle, and switching restricts sockets to the AngleRange window
// around the player input direction.
func (ctrl *Controller) preModifierCheck(ctx *FindContext) bool {
	p := &ctrl.params
	it := &ctx.Iterator

	if ctx.Switching &&
		it.Candidate == ctx.Current.Candidate && it.Socket == ctx.Current.Socket {
		return false
	}

	if p.ScreenCapture {
		if !it.ScreenPositionValid {
			return false
		}
		offset := p.FindingScreenOffset
		if ctx.Switching {
			offset = p.SwitchingScreenOffset
		}
		if !IsOnScreen(it.ScreenPosition, ctx.View.ScreenW, ctx.View.ScreenH, offset) {
			return false
		}
	} else if AngleFromForward(ctx.View, it.WorldLocation, 0, 0) > p.CaptureAngle {
		return false
	}

	if ctx.Switching {
		if !ctx.Current.ScreenPositionValid || !it.ScreenPositionValid {
			return false
		}
		delta := ScreenDeltaAngle(ctx.Current.ScreenPosition, it.ScreenPosition, ctx.PlayerInput)
		if delta > p.AngleRange {
			return false
		}
	}
	return true
}

// findBestSocket scores every socket of one candidate and returns the best
// accepted one. The flow is: cheap modifier, compare to best-so-far, and only
// for an improvement run the expensive post check. A failed post check
// discards the candidate's previously accepted socket instead of reverting to
// it; a later socket can still win by improving on the failed modifier.
func (ctrl *Controller) findBestSocket(ctx *FindContext, c Candidate) (targetModifier, bool) {
	best := targetModifier{modifier: math.MaxFloat64}
	accepted := false
	needScreen := ctrl.params.ScreenCapture || ctx.Switching

	for _, socket := range c.Sockets() {
		if !ctx.prepareIterator(c, socket, needScreen) {
			continue
		}
		if !ctrl.preModifierCheck(ctx) {
			continue
		}
		mod := ctrl.computeModifier(ctx)
		ctrl.fireModifierCalculated(ctx, mod)
		if mod >= best.modifier {
			continue
		}
		best.modifier = mod
		if ctrl.postCheck(ctx) {
			best.info = TargetInfo{Candidate: c, Socket: socket}
			accepted = true
		} else {
			best.info = TargetInfo{}
			accepted = false
		}
	}
	return best, accepted
}

// findBestTarget folds findBestSocket across all eligible candidates and
// keeps the global minimum. Ties resolve to the registry iteration order,
// stable within a single pass but not guaranteed across passes.
func (ctrl *Controller) findBestTarget(ctx *FindContext) (TargetInfo, float64, bool) {
	best := targetModifier{modifier: math.MaxFloat64}
	found := false

	for _, c := range ctrl.registry.Candidates() {
		if !ctrl.isTargetable(c) {
			continue
		}
		if !ctrl.isEligibleCustom(ctx, c) {
			continue
		}
		tm, ok := ctrl.findBestSocket(ctx, c)
		if ok && tm.modifier < best.modifier {
			best = tm
			found = true
		}
	}
	if !found {
		return TargetInfo{}, 0, false
	}
	return best.info, best.modifier, true
}
