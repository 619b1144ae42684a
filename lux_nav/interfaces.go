package lux_nav

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Sensor ring indices, clockwise around the chassis starting dead ahead.
// Each sensor sits 45 degrees from its neighbours.
const (
	SensorFront = iota
	SensorFrontRight
	SensorRight
	SensorRearRight
	SensorRear
	SensorRearLeft
	SensorLeft
	SensorFrontLeft

	SensorCount = 8
)

// SensorFrame is a single simulator reading for one control tick.
//
// Conventions:
//   - Proximity values grow as obstacles get closer (inverse distance).
//   - Lux values grow with brightness.
//   - Pos (0, 0) means the simulated GPS has not settled yet.
type SensorFrame struct {
	T         float64
	Proximity [SensorCount]float64
	Lux       [SensorCount]float64
	Pos       r2.Point
}

// PosValid reports whether the frame carries a usable position.
// The simulated GPS emits exact zeros until its first real fix.
func (f SensorFrame) PosValid() bool {
	if math.IsNaN(f.Pos.X) || math.IsNaN(f.Pos.Y) {
		return false
	}
	return f.Pos.X != 0 || f.Pos.Y != 0
}

// MeanLux returns the arithmetic mean of all luminosity readings.
func (f SensorFrame) MeanLux() float64 {
	return meanLux(f.Lux[:])
}

// Phase is the current mission stage. Transitions run strictly forward.
type Phase int

const (
	PhaseAwaitOrigin Phase = iota + 1
	PhaseFollowWall
	PhaseSeekLight
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitOrigin:
		return "AWAIT_ORIGIN"
	case PhaseFollowWall:
		return "FOLLOW_WALL"
	case PhaseSeekLight:
		return "SEEK_LIGHT"
	case PhaseDone:
		return "DONE"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// DriveMode selects which steering law the controller applies.
type DriveMode int

const (
	ModeWallFollow DriveMode = iota + 1
	ModeSeekLight
)

func (m DriveMode) String() string {
	switch m {
	case ModeWallFollow:
		return "WALL_FOLLOW"
	case ModeSeekLight:
		return "SEEK_LIGHT"
	default:
		return fmt.Sprintf("DriveMode(%d)", int(m))
	}
}

// WheelCommand is the controller output handed to the differential drive.
// Both speeds are angular velocities bounded by the configured maximum.
type WheelCommand struct {
	T     float64
	Phase Phase
	Left  float64
	Right float64
}
