package targeting

// TargetContext is the per-socket slice of an evaluation: the candidate under
// consideration, the socket, its world location and (when computed) its screen
// projection.
type TargetContext struct {
	Candidate Candidate
	Socket    SocketName

	WorldLocation Vec3

	// ScreenPosition is only computed in screen-capture mode or while
	// switching. Check ScreenPositionValid before use.
	ScreenPosition      Vec2
	ScreenPositionValid bool
}

// FindContext carries the shared state of one find/switch evaluation. It is
// built fresh per call and never persisted across ticks.
type FindContext struct {
	View Viewpoint

	// PlayerInput is the raw directional input in screen space (X right,
	// Y down). Zero while finding.
	PlayerInput Vec2

	// Current is the locked pair, filled only while switching.
	Current TargetContext

	// Iterator is the (candidate, socket) currently being scored.
	Iterator TargetContext

	Switching bool
}

// prepareIterator points the context at one socket of a candidate and fills
// in its geometry. Screen projection is skipped unless needed, it is the
// expensive part of context preparation.
func (ctx *FindContext) prepareIterator(c Candidate, socket SocketName, needScreen bool) bool {
	loc, ok := c.SocketLocation(socket)
	if !ok {
		return false
	}
	ctx.Iterator = TargetContext{
		Candidate:     c,
		Socket:        socket,
		WorldLocation: loc,
	}
	if needScreen {
		pos, ok := ctx.View.Project(loc)
		ctx.Iterator.ScreenPosition = pos
		ctx.Iterator.ScreenPositionValid = ok
	}
	return true
}
