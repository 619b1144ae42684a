package lux_nav

import (
	"expvar"
	"log"
	"net/http"
)

// VizConfig controls the optional expvar endpoint used by jplot.
type VizConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// VizMetrics exposes live input/output values via expvar.
type VizMetrics struct {
	input  *expvar.Map
	output *expvar.Map
	flat   map[string]*expvar.Float
}

// StartViz starts an HTTP server exposing /debug/vars for plotting.
func StartViz(cfg VizConfig) (*VizMetrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7070"
	}

	metrics := &VizMetrics{
		input:  expvar.NewMap("input"),
		output: expvar.NewMap("output"),
		flat:   map[string]*expvar.Float{},
	}
	metrics.input.Set("mean_lux", new(expvar.Float))
	metrics.input.Set("front", new(expvar.Float))
	metrics.input.Set("side", new(expvar.Float))
	metrics.input.Set("x", new(expvar.Float))
	metrics.input.Set("y", new(expvar.Float))
	metrics.output.Set("left", new(expvar.Float))
	metrics.output.Set("right", new(expvar.Float))
	metrics.output.Set("phase", new(expvar.Float))
	metrics.output.Set("peak_lux", new(expvar.Float))
	metrics.flat["input_mean_lux"] = expvar.NewFloat("input_mean_lux")
	metrics.flat["input_front"] = expvar.NewFloat("input_front")
	metrics.flat["input_side"] = expvar.NewFloat("input_side")
	metrics.flat["output_left"] = expvar.NewFloat("output_left")
	metrics.flat["output_right"] = expvar.NewFloat("output_right")
	metrics.flat["output_phase"] = expvar.NewFloat("output_phase")
	metrics.flat["output_peak_lux"] = expvar.NewFloat("output_peak_lux")

	server := &http.Server{Addr: cfg.Addr, Handler: http.DefaultServeMux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("viz server error: %v", err)
		}
	}()

	return metrics, nil
}

// UpdateInput publishes the latest telemetry values.
func (v *VizMetrics) UpdateInput(frame SensorFrame) {
	if v == nil {
		return
	}
	setFloat(v.input, "mean_lux", frame.MeanLux())
	setFloat(v.input, "front", frame.Proximity[SensorFront])
	setFloat(v.input, "side", frame.Proximity[SensorRight])
	setFloat(v.input, "x", frame.Pos.X)
	setFloat(v.input, "y", frame.Pos.Y)
	setFlat(v.flat, "input_mean_lux", frame.MeanLux())
	setFlat(v.flat, "input_front", frame.Proximity[SensorFront])
	setFlat(v.flat, "input_side", frame.Proximity[SensorRight])
}

// UpdateOutput publishes the latest command and mission memory values.
func (v *VizMetrics) UpdateOutput(cmd WheelCommand, nav *Navigator) {
	if v == nil {
		return
	}
	setFloat(v.output, "left", cmd.Left)
	setFloat(v.output, "right", cmd.Right)
	setFloat(v.output, "phase", float64(cmd.Phase))
	setFlat(v.flat, "output_left", cmd.Left)
	setFlat(v.flat, "output_right", cmd.Right)
	setFlat(v.flat, "output_phase", float64(cmd.Phase))
	if nav != nil {
		if peak, _, ok := nav.Tracker().Peak(); ok {
			setFloat(v.output, "peak_lux", peak)
			setFlat(v.flat, "output_peak_lux", peak)
		}
	}
}

// setFloat updates an expvar.Float stored inside a map.
func setFloat(m *expvar.Map, key string, value float64) {
	if v := m.Get(key); v != nil {
		if f, ok := v.(*expvar.Float); ok {
			f.Set(value)
			return
		}
	}
	f := new(expvar.Float)
	f.Set(value)
	m.Set(key, f)
}

func setFlat(vars map[string]*expvar.Float, key string, value float64) {
	if v, ok := vars[key]; ok {
		v.Set(value)
	}
}
