package lux_nav

import (
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// Navigator runs the mission state machine. It owns the exploration
// memory (origin fix, peak luminosity via the tracker), the current
// phase and the tick counter, and drives the tracker and controller
// once per frame. A Step never fails; degenerate input maps to a
// neutral command.
type Navigator struct {
	cfg        NavConfig
	logger     *zap.Logger
	tracker    *LuxTracker
	controller *DriveController

	phase        Phase
	origin       r2.Point
	originSet    bool
	exploreTicks int
	onDone       func()
}

// NewNavigator constructs a navigator in the origin-acquisition phase.
func NewNavigator(cfg NavConfig, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{
		cfg:        cfg,
		logger:     logger,
		tracker:    NewLuxTracker(logger),
		controller: NewDriveController(cfg),
		phase:      PhaseAwaitOrigin,
	}
}

// SetOnDone registers a hook fired exactly once, on the transition into
// the terminal phase.
func (n *Navigator) SetOnDone(fn func()) { n.onDone = fn }

// Phase returns the current mission phase.
func (n *Navigator) Phase() Phase { return n.phase }

// Origin returns the recorded mission start position, if acquired.
func (n *Navigator) Origin() (r2.Point, bool) { return n.origin, n.originSet }

// Tracker exposes the peak-luminosity memory for observability.
func (n *Navigator) Tracker() *LuxTracker { return n.tracker }

// Step processes one control tick and returns the wheel command.
func (n *Navigator) Step(frame SensorFrame) WheelCommand {
	if n.cfg.DriveModeOverride != nil {
		return n.stepOverride(frame)
	}

	var left, right float64
	switch n.phase {
	case PhaseAwaitOrigin:
		left, right = n.stepAwaitOrigin(frame)
	case PhaseFollowWall:
		left, right = n.stepFollowWall(frame)
	case PhaseSeekLight:
		left, right = n.stepSeekLight(frame)
	case PhaseDone:
		left, right = 0, 0
	}
	return WheelCommand{T: frame.T, Phase: n.phase, Left: left, Right: right}
}

// stepOverride pins the controller to a fixed steering law for tuning
// runs. Phase transitions are suspended; the tracker still observes.
func (n *Navigator) stepOverride(frame SensorFrame) WheelCommand {
	n.tracker.Observe(frame)
	left, right := n.controller.Compute(frame, *n.cfg.DriveModeOverride)
	return WheelCommand{T: frame.T, Phase: n.phase, Left: left, Right: right}
}

// stepAwaitOrigin waits for the first usable position fix. Until then
// the robot nudges straight ahead; the simulated GPS needs a step or
// two to settle.
func (n *Navigator) stepAwaitOrigin(frame SensorFrame) (float64, float64) {
	if !frame.PosValid() {
		return n.cfg.CruiseSpeed, n.cfg.CruiseSpeed
	}

	n.origin = frame.Pos
	n.originSet = true
	n.transition(PhaseFollowWall, frame)
	return n.stepFollowWall(frame)
}

// stepFollowWall explores the arena boundary. The exit requires both
// closeness to the origin and a minimum number of exploration ticks;
// the conjunction stops the machine from bailing out on tick one while
// the robot is still parked at its start position.
func (n *Navigator) stepFollowWall(frame SensorFrame) (float64, float64) {
	n.tracker.Observe(frame)
	n.exploreTicks++
	left, right := n.controller.Compute(frame, ModeWallFollow)

	if n.exploreTicks >= n.cfg.MinExploreTicks &&
		frame.Pos.Sub(n.origin).Norm() < n.cfg.OriginRadius {
		n.transition(PhaseSeekLight, frame)
	}
	return left, right
}

// stepSeekLight homes in on the recorded peak. Convergence is checked
// against the current fix before steering so the terminal tick already
// outputs zero.
func (n *Navigator) stepSeekLight(frame SensorFrame) (float64, float64) {
	n.tracker.Observe(frame)

	_, peakPos, ok := n.tracker.Peak()
	if ok && frame.Pos.Sub(peakPos).Norm() < n.cfg.LightRadius {
		n.transition(PhaseDone, frame)
		if n.onDone != nil {
			n.onDone()
			n.onDone = nil
		}
		return 0, 0
	}
	return n.controller.Compute(frame, ModeSeekLight)
}

// transition advances the phase. Phases only ever move forward.
func (n *Navigator) transition(next Phase, frame SensorFrame) {
	n.logger.Info("phase transition",
		zap.Float64("t", frame.T),
		zap.Stringer("from", n.phase),
		zap.Stringer("to", next),
		zap.Int("explore_ticks", n.exploreTicks),
	)
	n.phase = next
}
