package main

import (
	"flag"
	"math"

	"LockOnArena/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	configPath := flag.String("config", "configs/targeting.json", "path to targeting tuning JSON")
	autoFindFlags := flag.Int("auto-find-flags", -1, "override auto-find unlock reason bitmask (0-31)")
	screenCapture := flag.String("screen-capture", "", "override screen capture mode (true/false)")
	captureAngle := flag.Float64("capture-angle", math.NaN(), "override capture cone half-angle in degrees")
	distanceWeight := flag.Float64("distance-weight", math.NaN(), "override distance weight")
	angleFinding := flag.Float64("angle-weight-finding", math.NaN(), "override angle weight for finding passes")
	angleSwitching := flag.Float64("angle-weight-switching", math.NaN(), "override angle weight for switching passes")
	inputWeight := flag.Float64("input-weight", math.NaN(), "override player input weight")
	angleRange := flag.Float64("angle-range", math.NaN(), "override switching angle window in degrees")
	lineOfSight := flag.String("line-of-sight", "", "override line-of-sight checking (true/false)")
	lostDelay := flag.Float64("lost-delay", math.NaN(), "override lost target grace period in seconds")
	radiusMult := flag.Float64("radius-mult", math.NaN(), "override capture radius multiplier")
	flag.Parse()

	cfg := server.DefaultAppConfig()
	cfg.ConfigPath = *configPath

	var overrides server.ParamOverrides

	if *autoFindFlags >= 0 {
		val := uint8(*autoFindFlags)
		overrides.AutoFindFlags = &val
	}
	if *screenCapture != "" {
		val := *screenCapture == "true"
		overrides.ScreenCapture = &val
	}
	if !math.IsNaN(*captureAngle) {
		val := *captureAngle
		overrides.CaptureAngle = &val
	}
	if !math.IsNaN(*distanceWeight) {
		val := *distanceWeight
		overrides.DistanceWeight = &val
	}
	if !math.IsNaN(*angleFinding) {
		val := *angleFinding
		overrides.AngleWeightFinding = &val
	}
	if !math.IsNaN(*angleSwitching) {
		val := *angleSwitching
		overrides.AngleWeightSwitching = &val
	}
	if !math.IsNaN(*inputWeight) {
		val := *inputWeight
		overrides.PlayerInputWeight = &val
	}
	if !math.IsNaN(*angleRange) {
		val := *angleRange
		overrides.AngleRange = &val
	}
	if *lineOfSight != "" {
		val := *lineOfSight == "true"
		overrides.LineOfSightCheck = &val
	}
	if !math.IsNaN(*lostDelay) {
		val := *lostDelay
		overrides.LostTargetDelay = &val
	}
	if !math.IsNaN(*radiusMult) {
		val := *radiusMult
		overrides.CaptureRadiusMultiplier = &val
	}

	cfg.Overrides = overrides

	server.StartApp(*addr, cfg)
}
