package lux_nav

import (
	"math"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// LuxTracker keeps the brightest mean reading seen so far and where it
// was seen. The peak only ever increases; value and position are always
// rewritten in the same tick.
type LuxTracker struct {
	logger *zap.Logger

	peakValue float64
	peakPos   r2.Point
	observed  bool
}

// NewLuxTracker constructs a tracker with an unset peak.
func NewLuxTracker(logger *zap.Logger) *LuxTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LuxTracker{logger: logger, peakValue: math.Inf(-1)}
}

// Observe ingests one frame. Returns true when the frame sets a new
// peak; a non-update has no side effects.
func (tr *LuxTracker) Observe(frame SensorFrame) bool {
	mean := stat.Mean(frame.Lux[:], nil)
	if mean <= tr.peakValue {
		return false
	}
	tr.peakValue = mean
	tr.peakPos = frame.Pos
	tr.observed = true
	tr.logger.Info("new luminosity peak",
		zap.Float64("t", frame.T),
		zap.Float64("mean", mean),
		zap.Float64("x", frame.Pos.X),
		zap.Float64("y", frame.Pos.Y),
	)
	return true
}

// Peak returns the best mean reading so far and its position. The bool
// is false until the first observation lands.
func (tr *LuxTracker) Peak() (float64, r2.Point, bool) {
	return tr.peakValue, tr.peakPos, tr.observed
}

// meanLux is the shared mean used by frames and the tracker.
func meanLux(readings []float64) float64 {
	return stat.Mean(readings, nil)
}
