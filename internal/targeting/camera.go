package targeting

import "math"

// Viewpoint is a snapshot of the acting camera for one evaluation: position,
// orientation basis and projection parameters. Hosts rebuild it every tick.
type Viewpoint struct {
	Pos     Vec3
	Forward Vec3 // unit
	Up      Vec3 // unit
	FOVDeg  float64
	ScreenW float64
	ScreenH float64
}

func (v Viewpoint) Right() Vec3 { return v.Up.Cross(v.Forward).Normalized() }

// Project maps a world point to pixel coordinates (origin top-left, Y down).
// Points at or behind the camera plane report ok=false. Points outside the
// frustum project to coordinates outside the viewport and are handled by the
// on-screen bounds test, not here.
func (v Viewpoint) Project(p Vec3) (Vec2, bool) {
	if v.ScreenW <= 0 || v.ScreenH <= 0 || v.FOVDeg <= 0 {
		return Vec2{}, false
	}
	rel := p.Sub(v.Pos)
	z := rel.Dot(v.Forward)
	if z <= 1e-9 {
		return Vec2{}, false
	}
	x := rel.Dot(v.Right())
	y := rel.Dot(v.Up)

	tanH := math.Tan(v.FOVDeg * math.Pi / 360) // half horizontal FOV
	tanV := tanH * v.ScreenH / v.ScreenW
	ndcX := x / (z * tanH)
	ndcY := y / (z * tanV)

	px := (ndcX + 1) * 0.5 * v.ScreenW
	py := (1 - ndcY) * 0.5 * v.ScreenH
	return Vec2{px, py}, true
}

// RotatedForward applies the configured view rotation offset: yaw around the
// camera up axis, then pitch around the resulting right axis. Degrees.
func (v Viewpoint) RotatedForward(yawDeg, pitchDeg float64) Vec3 {
	f := v.Forward
	if yawDeg != 0 {
		f = rotateAround(f, v.Up, yawDeg)
	}
	if pitchDeg != 0 {
		right := v.Up.Cross(f).Normalized()
		f = rotateAround(f, right, pitchDeg)
	}
	return f.Normalized()
}

// rotateAround rotates v around unit axis by deg (Rodrigues formula).
func rotateAround(v, axis Vec3, deg float64) Vec3 {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}
