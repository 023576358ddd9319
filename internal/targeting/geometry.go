package targeting

// Pure geometric terms of the modifier. No hidden state; safe to call
// concurrently for different points.

// NormalizedDistance is the distance from view to point divided by reference.
// A point right at the reference distance scores 1. reference <= 0 falls back
// to the raw distance.
func NormalizedDistance(view, point Vec3, reference float64) float64 {
	d := point.Sub(view).Len()
	if reference <= 0 {
		return d
	}
	return d / reference
}

// AngleFromForward is the angle in degrees between the viewpoint forward
// vector, rotated by the configured offset, and the direction to point.
func AngleFromForward(v Viewpoint, point Vec3, yawOffDeg, pitchOffDeg float64) float64 {
	forward := v.Forward
	if yawOffDeg != 0 || pitchOffDeg != 0 {
		forward = v.RotatedForward(yawOffDeg, pitchOffDeg)
	}
	return AngleBetweenDeg(forward, point.Sub(v.Pos))
}

// ScreenDeltaAngle is the angle in degrees between the player input direction
// and the screen-space direction from the current target to a candidate
// socket. 180 when either direction degenerates to zero, so a degenerate
// socket never falls inside any switching window.
func ScreenDeltaAngle(from, to, input Vec2) float64 {
	dir := to.Sub(from)
	if (dir == Vec2{}) || (input == Vec2{}) {
		return 180
	}
	return AngleBetweenDeg2(dir, input)
}

// IsOnScreen reports whether a projected position lies within the screen
// narrowed by offsetPct percent on each side of each axis. Bounds are
// inclusive: a point exactly on the narrowed border is on screen.
func IsOnScreen(pos Vec2, screenW, screenH float64, offsetPct Vec2) bool {
	dx := screenW * offsetPct.X / 100
	dy := screenH * offsetPct.Y / 100
	return pos.X >= dx && pos.X <= screenW-dx &&
		pos.Y >= dy && pos.Y <= screenH-dy
}
