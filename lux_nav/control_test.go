package lux_nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testNavConfig() NavConfig {
	return NavConfig{
		MaxSpeed:           6.28,
		CruiseSpeed:        3.0,
		SideWallDistance:   150,
		FrontObstacleLimit: 150,
		RotateSpeed:        2.0,
		OriginRadius:       0.5,
		LightRadius:        0.15,
		MinExploreTicks:    5000,
		WallDeadBand:       50,
		WallGain:           0.005,
		SlowFactor:         0.5,
		LightSeekGain:      0.3,
	}
}

func TestComputeFrontalOverridePreemptsEveryMode(t *testing.T) {
	dc := NewDriveController(testNavConfig())

	for _, mode := range []DriveMode{ModeWallFollow, ModeSeekLight} {
		for _, sensor := range []int{SensorFrontLeft, SensorFront, SensorFrontRight} {
			var frame SensorFrame
			frame.Proximity[sensor] = 200
			// Goal-directed pulls that would otherwise steer.
			frame.Proximity[SensorRight] = 300
			frame.Lux[SensorLeft] = 1.0

			left, right := dc.Compute(frame, mode)
			assert.Equal(t, -2.0, left, "mode=%s sensor=%d", mode, sensor)
			assert.Equal(t, 2.0, right, "mode=%s sensor=%d", mode, sensor)
		}
	}
}

func TestComputeRearSensorsDoNotTripOverride(t *testing.T) {
	dc := NewDriveController(testNavConfig())

	var frame SensorFrame
	frame.Proximity[SensorRear] = 500
	frame.Proximity[SensorRearLeft] = 500
	frame.Proximity[SensorRight] = 150

	left, right := dc.Compute(frame, ModeWallFollow)
	assert.Equal(t, 3.0, left)
	assert.Equal(t, 3.0, right)
}

func TestWallFollowSteering(t *testing.T) {
	cfg := testNavConfig()
	dc := NewDriveController(cfg)

	tests := []struct {
		name        string
		sideReading float64
		wantLeft    float64
		wantRight   float64
	}{
		{"too far, turn toward wall", 40, 3.0, 1.5},
		{"too close, turn away", 260, 1.5, 3.0},
		{"on target, straight", 150, 3.0, 3.0},
		{"inside dead band, proportional trim", 130, 3.0 + 20*0.005, 3.0 - 20*0.005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frame SensorFrame
			frame.Proximity[SensorRight] = tt.sideReading
			left, right := dc.Compute(frame, ModeWallFollow)
			assert.InDelta(t, tt.wantLeft, left, 1e-9)
			assert.InDelta(t, tt.wantRight, right, 1e-9)
		})
	}
}

func TestSeekLightCurvesTowardBrighterSide(t *testing.T) {
	dc := NewDriveController(testNavConfig())

	var frame SensorFrame
	frame.Lux[SensorLeft] = 0.9
	frame.Lux[SensorRearLeft] = 0.7
	frame.Lux[SensorRight] = 0.1
	left, right := dc.Compute(frame, ModeSeekLight)
	assert.Less(t, left, right, "brighter left half should slow the left wheel")

	frame = SensorFrame{}
	frame.Lux[SensorRight] = 0.9
	frame.Lux[SensorFrontRight] = 0.5
	left, right = dc.Compute(frame, ModeSeekLight)
	assert.Greater(t, left, right, "brighter right half should slow the right wheel")
}

func TestSeekLightZeroTotalHoldsStraight(t *testing.T) {
	dc := NewDriveController(testNavConfig())

	var frame SensorFrame
	// Front and rear sensors carry light, but the halves are empty.
	frame.Lux[SensorFront] = 1.0
	frame.Lux[SensorRear] = 1.0

	left, right := dc.Compute(frame, ModeSeekLight)
	assert.Equal(t, 3.0, left)
	assert.Equal(t, 3.0, right)
}

func TestComputeOutputsAlwaysClamped(t *testing.T) {
	cfg := testNavConfig()
	cfg.CruiseSpeed = cfg.MaxSpeed
	cfg.WallGain = 10 // absurd trim gain to force saturation
	dc := NewDriveController(cfg)

	frames := []SensorFrame{
		{},
		{Proximity: [SensorCount]float64{SensorRight: 160}},
		{Proximity: [SensorCount]float64{SensorRight: 1e6}},
		{Lux: [SensorCount]float64{SensorLeft: 1e9}},
		{Proximity: [SensorCount]float64{SensorFront: 1e9}},
	}
	for _, frame := range frames {
		for _, mode := range []DriveMode{ModeWallFollow, ModeSeekLight} {
			left, right := dc.Compute(frame, mode)
			assert.GreaterOrEqual(t, left, -cfg.MaxSpeed)
			assert.LessOrEqual(t, left, cfg.MaxSpeed)
			assert.GreaterOrEqual(t, right, -cfg.MaxSpeed)
			assert.LessOrEqual(t, right, cfg.MaxSpeed)
		}
	}
}
