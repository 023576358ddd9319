package targeting

// UnlockReason says why a lock ended. Each reason can independently enable
// an automatic re-search via Params.AutoFindTargetFlags.
type UnlockReason uint8

const (
	// UnlockTargetInvalidation - the candidate was destroyed or disabled.
	UnlockTargetInvalidation UnlockReason = 1 << iota
	// UnlockOutOfLostDistance - the candidate left the lost distance.
	UnlockOutOfLostDistance
	// UnlockLineOfSightFail - the line-of-sight grace timer expired.
	UnlockLineOfSightFail
	// UnlockCandidateRejected - the candidate's CanBeCaptured hook said no.
	UnlockCandidateRejected
	// UnlockSocketInvalidation - the captured socket was removed.
	UnlockSocketInvalidation

	// UnlockManual - the player released the lock. Never auto-finds.
	UnlockManual UnlockReason = 0
)

func (r UnlockReason) String() string {
	switch r {
	case UnlockTargetInvalidation:
		return "target_invalidation"
	case UnlockOutOfLostDistance:
		return "out_of_lost_distance"
	case UnlockLineOfSightFail:
		return "line_of_sight_fail"
	case UnlockCandidateRejected:
		return "candidate_rejected"
	case UnlockSocketInvalidation:
		return "socket_invalidation"
	}
	return "manual"
}

// UnlockReasonSet is an enum-backed flag set over UnlockReason. The underlying
// bits match UnlockReason so a serialized mask round-trips unchanged.
type UnlockReasonSet uint8

func (s UnlockReasonSet) Has(r UnlockReason) bool      { return uint8(s)&uint8(r) != 0 }
func (s UnlockReasonSet) With(r UnlockReason) UnlockReasonSet { return s | UnlockReasonSet(r) }

// AllUnlockReasons enables auto-find for every automatic unlock reason.
const AllUnlockReasons = UnlockReasonSet(UnlockTargetInvalidation |
	UnlockOutOfLostDistance |
	UnlockLineOfSightFail |
	UnlockCandidateRejected |
	UnlockSocketInvalidation)

// Params is the flat tuning surface of the selection pipeline. Immutable
// during one evaluation; hosts may swap it between ticks.
type Params struct {
	// AutoFindTargetFlags gates the automatic re-search after an unlock,
	// per reason.
	AutoFindTargetFlags UnlockReasonSet

	// ScreenCapture selects screen-bounds filtering instead of the capture
	// angle cone.
	ScreenCapture bool
	// FindingScreenOffset narrows the screen borders (percent per axis, both
	// sides) while finding.
	FindingScreenOffset Vec2
	// SwitchingScreenOffset narrows the screen borders while switching.
	SwitchingScreenOffset Vec2
	// CaptureAngle is the max angle (deg) from the view forward when
	// ScreenCapture is off.
	CaptureAngle float64

	// Modifier weights. Lower modifier wins.
	DistanceWeight            float64
	AngleWeightWhileFinding   float64
	AngleWeightWhileSwitching float64
	PlayerInputWeight         float64

	// ViewRotationOffset adjusts the forward vector used for the angle term
	// (deg). Useful to shift the effective screen center.
	ViewYawOffsetDeg   float64
	ViewPitchOffsetDeg float64

	// AngleRange restricts switching to sockets within this angular window
	// (deg) around the player input direction in screen space.
	AngleRange float64

	// Line of sight.
	LineOfSightCheck bool
	TraceChannels    ChannelMask
	// LostTargetDelay is the occlusion grace period in seconds. <= 0 disables
	// periodic tracing entirely; line of sight is then only checked inline
	// during find/switch passes.
	LostTargetDelay float64

	// CaptureRadiusMultiplier scales every candidate's capture radius.
	CaptureRadiusMultiplier float64
}

func DefaultParams() Params {
	return Params{
		AutoFindTargetFlags:       AllUnlockReasons,
		ScreenCapture:             true,
		FindingScreenOffset:       Vec2{15, 10},
		SwitchingScreenOffset:     Vec2{5, 2.5},
		CaptureAngle:              35,
		DistanceWeight:            1,
		AngleWeightWhileFinding:   0.6,
		AngleWeightWhileSwitching: 0.75,
		PlayerInputWeight:         0.5,
		AngleRange:                60,
		LineOfSightCheck:          true,
		TraceChannels:             ChannelWorldStatic | ChannelWorldDynamic,
		LostTargetDelay:           3,
		CaptureRadiusMultiplier:   1,
	}
}

// SanitizeParams clamps every option to its valid range.
func SanitizeParams(p Params) Params {
	p.FindingScreenOffset.X = Clamp(p.FindingScreenOffset.X, 0, 50)
	p.FindingScreenOffset.Y = Clamp(p.FindingScreenOffset.Y, 0, 50)
	p.SwitchingScreenOffset.X = Clamp(p.SwitchingScreenOffset.X, 0, 50)
	p.SwitchingScreenOffset.Y = Clamp(p.SwitchingScreenOffset.Y, 0, 50)
	p.CaptureAngle = Clamp(p.CaptureAngle, 0, 180)
	p.DistanceWeight = Clamp(p.DistanceWeight, 0, 1)
	p.AngleWeightWhileFinding = Clamp(p.AngleWeightWhileFinding, 0, 1)
	p.AngleWeightWhileSwitching = Clamp(p.AngleWeightWhileSwitching, 0, 1)
	p.PlayerInputWeight = Clamp(p.PlayerInputWeight, 0, 1)
	p.AngleRange = Clamp(p.AngleRange, 0, 180)
	if p.CaptureRadiusMultiplier < 0 {
		p.CaptureRadiusMultiplier = 0
	}
	return p
}
