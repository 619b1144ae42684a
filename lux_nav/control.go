package lux_nav

import "gonum.org/v1/gonum/floats"

// DriveController maps one sensor frame to a pair of wheel speeds.
// It is stateless; all tuning lives in NavConfig.
type DriveController struct {
	Cfg NavConfig
}

// NewDriveController constructs a controller with the given configuration.
func NewDriveController(cfg NavConfig) *DriveController {
	return &DriveController{Cfg: cfg}
}

// Compute applies the steering law for the given mode. The frontal
// obstacle override runs first and pre-empts everything else.
func (dc *DriveController) Compute(frame SensorFrame, mode DriveMode) (left, right float64) {
	if dc.frontBlocked(frame) {
		return dc.clampPair(-dc.Cfg.RotateSpeed, dc.Cfg.RotateSpeed)
	}

	switch mode {
	case ModeWallFollow:
		left, right = dc.wallFollow(frame)
	case ModeSeekLight:
		left, right = dc.seekLight(frame)
	default:
		left, right = dc.Cfg.CruiseSpeed, dc.Cfg.CruiseSpeed
	}
	return dc.clampPair(left, right)
}

// frontBlocked reports whether any forward-facing sensor trips the
// obstacle limit. Proximity grows as obstacles get closer.
func (dc *DriveController) frontBlocked(frame SensorFrame) bool {
	for _, i := range [...]int{SensorFrontLeft, SensorFront, SensorFrontRight} {
		if frame.Proximity[i] > dc.Cfg.FrontObstacleLimit {
			return true
		}
	}
	return false
}

// wallFollow keeps the right-hand wall at the configured distance.
// Outside the dead band the inner wheel is slowed by SlowFactor; inside
// it a small proportional trim damps the steady-state oscillation.
func (dc *DriveController) wallFollow(frame SensorFrame) (float64, float64) {
	cruise := dc.Cfg.CruiseSpeed
	err := dc.Cfg.SideWallDistance - frame.Proximity[SensorRight]

	switch {
	case err > dc.Cfg.WallDeadBand:
		// Drifting away from the wall, turn right.
		return cruise, cruise * dc.Cfg.SlowFactor
	case err < -dc.Cfg.WallDeadBand:
		// Too close, turn left.
		return cruise * dc.Cfg.SlowFactor, cruise
	default:
		corr := err * dc.Cfg.WallGain
		return cruise + corr, cruise - corr
	}
}

// seekLight curves toward the brighter half of the sensor ring using a
// normalized left/right differential. Front and rear sensors carry no
// lateral information and are excluded from the sums.
func (dc *DriveController) seekLight(frame SensorFrame) (float64, float64) {
	cruise := dc.Cfg.CruiseSpeed
	rightSum := floats.Sum(frame.Lux[SensorFrontRight : SensorRearRight+1])
	leftSum := floats.Sum(frame.Lux[SensorRearLeft : SensorFrontLeft+1])

	total := leftSum + rightSum
	if total == 0 {
		return cruise, cruise
	}

	turn := dc.Cfg.LightSeekGain * (leftSum - rightSum) / total
	return cruise * (1 - turn), cruise * (1 + turn)
}

func (dc *DriveController) clampPair(left, right float64) (float64, float64) {
	max := dc.Cfg.MaxSpeed
	return clamp(left, -max, max), clamp(right, -max, max)
}

// clamp keeps value inside [lo, hi].
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
