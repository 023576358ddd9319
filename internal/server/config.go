package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"LockOnArena/internal/targeting"
)

// targetingConfig mirrors targeting.Params with optional fields so a partial
// JSON file only touches what it names.
type targetingConfig struct {
	AutoFindFlags           *uint8   `json:"autoFindFlags"`
	ScreenCapture           *bool    `json:"screenCapture"`
	FindingScreenOffsetX    *float64 `json:"findingScreenOffsetX"`
	FindingScreenOffsetY    *float64 `json:"findingScreenOffsetY"`
	SwitchingScreenOffsetX  *float64 `json:"switchingScreenOffsetX"`
	SwitchingScreenOffsetY  *float64 `json:"switchingScreenOffsetY"`
	CaptureAngle            *float64 `json:"captureAngle"`
	DistanceWeight          *float64 `json:"distanceWeight"`
	AngleWeightFinding      *float64 `json:"angleWeightFinding"`
	AngleWeightSwitching    *float64 `json:"angleWeightSwitching"`
	PlayerInputWeight       *float64 `json:"playerInputWeight"`
	ViewYawOffset           *float64 `json:"viewYawOffset"`
	ViewPitchOffset         *float64 `json:"viewPitchOffset"`
	AngleRange              *float64 `json:"angleRange"`
	LineOfSightCheck        *bool    `json:"lineOfSightCheck"`
	TraceChannels           *uint32  `json:"traceChannels"`
	LostTargetDelay         *float64 `json:"lostTargetDelay"`
	CaptureRadiusMultiplier *float64 `json:"captureRadiusMultiplier"`
}

type arenaConfig struct {
	Targeting *targetingConfig `json:"targeting"`
}

// ParamOverrides represents optional command-line overrides applied after the
// config file.
type ParamOverrides struct {
	AutoFindFlags           *uint8
	ScreenCapture           *bool
	CaptureAngle            *float64
	DistanceWeight          *float64
	AngleWeightFinding      *float64
	AngleWeightSwitching    *float64
	PlayerInputWeight       *float64
	AngleRange              *float64
	LineOfSightCheck        *bool
	LostTargetDelay         *float64
	CaptureRadiusMultiplier *float64
}

func (o ParamOverrides) apply(base targeting.Params) targeting.Params {
	if o.AutoFindFlags != nil {
		base.AutoFindTargetFlags = targeting.UnlockReasonSet(*o.AutoFindFlags)
	}
	if o.ScreenCapture != nil {
		base.ScreenCapture = *o.ScreenCapture
	}
	if o.CaptureAngle != nil {
		base.CaptureAngle = *o.CaptureAngle
	}
	if o.DistanceWeight != nil {
		base.DistanceWeight = *o.DistanceWeight
	}
	if o.AngleWeightFinding != nil {
		base.AngleWeightWhileFinding = *o.AngleWeightFinding
	}
	if o.AngleWeightSwitching != nil {
		base.AngleWeightWhileSwitching = *o.AngleWeightSwitching
	}
	if o.PlayerInputWeight != nil {
		base.PlayerInputWeight = *o.PlayerInputWeight
	}
	if o.AngleRange != nil {
		base.AngleRange = *o.AngleRange
	}
	if o.LineOfSightCheck != nil {
		base.LineOfSightCheck = *o.LineOfSightCheck
	}
	if o.LostTargetDelay != nil {
		base.LostTargetDelay = *o.LostTargetDelay
	}
	if o.CaptureRadiusMultiplier != nil {
		base.CaptureRadiusMultiplier = *o.CaptureRadiusMultiplier
	}
	return targeting.SanitizeParams(base)
}

func mergeTargetingConfig(base targeting.Params, cfg *targetingConfig) targeting.Params {
	if cfg == nil {
		return base
	}
	if cfg.AutoFindFlags != nil {
		base.AutoFindTargetFlags = targeting.UnlockReasonSet(*cfg.AutoFindFlags)
	}
	if cfg.ScreenCapture != nil {
		base.ScreenCapture = *cfg.ScreenCapture
	}
	if cfg.FindingScreenOffsetX != nil {
		base.FindingScreenOffset.X = *cfg.FindingScreenOffsetX
	}
	if cfg.FindingScreenOffsetY != nil {
		base.FindingScreenOffset.Y = *cfg.FindingScreenOffsetY
	}
	if cfg.SwitchingScreenOffsetX != nil {
		base.SwitchingScreenOffset.X = *cfg.SwitchingScreenOffsetX
	}
	if cfg.SwitchingScreenOffsetY != nil {
		base.SwitchingScreenOffset.Y = *cfg.SwitchingScreenOffsetY
	}
	if cfg.CaptureAngle != nil {
		base.CaptureAngle = *cfg.CaptureAngle
	}
	if cfg.DistanceWeight != nil {
		base.DistanceWeight = *cfg.DistanceWeight
	}
	if cfg.AngleWeightFinding != nil {
		base.AngleWeightWhileFinding = *cfg.AngleWeightFinding
	}
	if cfg.AngleWeightSwitching != nil {
		base.AngleWeightWhileSwitching = *cfg.AngleWeightSwitching
	}
	if cfg.PlayerInputWeight != nil {
		base.PlayerInputWeight = *cfg.PlayerInputWeight
	}
	if cfg.ViewYawOffset != nil {
		base.ViewYawOffsetDeg = *cfg.ViewYawOffset
	}
	if cfg.ViewPitchOffset != nil {
		base.ViewPitchOffsetDeg = *cfg.ViewPitchOffset
	}
	if cfg.AngleRange != nil {
		base.AngleRange = *cfg.AngleRange
	}
	if cfg.LineOfSightCheck != nil {
		base.LineOfSightCheck = *cfg.LineOfSightCheck
	}
	if cfg.TraceChannels != nil {
		base.TraceChannels = targeting.ChannelMask(*cfg.TraceChannels)
	}
	if cfg.LostTargetDelay != nil {
		base.LostTargetDelay = *cfg.LostTargetDelay
	}
	if cfg.CaptureRadiusMultiplier != nil {
		base.CaptureRadiusMultiplier = *cfg.CaptureRadiusMultiplier
	}
	return targeting.SanitizeParams(base)
}

func loadParamsFromFile(path string, base targeting.Params) (targeting.Params, error) {
	if path == "" {
		return base, fmt.Errorf("no config path")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return base, err
	}
	var cfg arenaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	return mergeTargetingConfig(base, cfg.Targeting), nil
}
