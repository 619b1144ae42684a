package lux_nav

import (
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// RunLive starts the UDP-to-UDP control loop. It validates the config,
// wires the navigator to the output sender and steps once per received
// telemetry frame at the configured rate.
func RunLive(cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Live.UDPAddr == "" {
		return fmt.Errorf("live.udp_addr must be set")
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	store := &liveStore{}
	if err := startUDPListener(cfg.Live, store, logger); err != nil {
		return err
	}

	nav := NewNavigator(cfg.Nav, logger)
	sender, err := NewOutputSender(cfg.Output.UDPAddr)
	if err != nil {
		return err
	}
	viz, err := StartViz(cfg.Viz)
	if err != nil {
		return err
	}
	defer func() {
		_ = sender.Close()
	}()

	nav.SetOnDone(func() {
		sender.SendDone()
		logger.Info("mission complete signal sent")
	})

	dtTarget := 1.0 / cfg.Hz
	t0 := time.Now()
	var lastSeq uint64

	for {
		now := time.Now()
		simT := now.Sub(t0).Seconds()

		frame, hasT, seq := store.Snapshot()
		if seq != lastSeq {
			lastSeq = seq
			if !hasT {
				frame.T = simT
			}
			if viz != nil {
				viz.UpdateInput(frame)
			}

			cmd := nav.Step(frame)
			sender.Send(cmd)
			if viz != nil {
				viz.UpdateOutput(cmd, nav)
			}

			logger.Debug("tick",
				zap.Float64("t", cmd.T),
				zap.Stringer("phase", cmd.Phase),
				zap.Float64("mean_lux", frame.MeanLux()),
				zap.Float64("front", frame.Proximity[SensorFront]),
				zap.Float64("side", frame.Proximity[SensorRight]),
				zap.Float64("x", frame.Pos.X),
				zap.Float64("y", frame.Pos.Y),
				zap.Float64("left", cmd.Left),
				zap.Float64("right", cmd.Right),
			)
		}

		elapsed := time.Since(now).Seconds()
		sleep := math.Max(0, dtTarget-elapsed)
		time.Sleep(time.Duration(sleep * float64(time.Second)))
	}
}

// buildLogger maps the log config section onto a zap logger. Disabled
// logging yields a no-op logger.
func buildLogger(cfg LogConfig) (*zap.Logger, error) {
	if !cfg.Enabled {
		return zap.NewNop(), nil
	}
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type liveStore struct {
	mu       sync.RWMutex
	last     SensorFrame
	lastHasT bool
	seq      uint64
}

// Update stores the latest frame and advances the sequence counter.
func (s *liveStore) Update(frame SensorFrame, hasT bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = frame
	s.lastHasT = hasT
	s.seq++
}

// Snapshot returns the most recent frame and metadata.
func (s *liveStore) Snapshot() (SensorFrame, bool, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastHasT, s.seq
}

// startUDPListener spawns a goroutine that listens for telemetry packets.
func startUDPListener(cfg LiveConfig, store *liveStore, logger *zap.Logger) error {
	addr, err := net.ResolveUDPAddr("udp", cfg.UDPAddr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}

	bufSize := cfg.ReadBuffer
	if bufSize <= 0 {
		bufSize = 2048
	}

	go func() {
		buf := make([]byte, bufSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				continue
			}
			frame, hasT, err := parseLiveFrame(buf[:n])
			if err != nil {
				logger.Debug("dropped malformed frame", zap.Error(err))
				continue
			}
			store.Update(frame, hasT)
		}
	}()

	return nil
}

// parseLiveFrame parses CSV payloads into SensorFrame values.
//
// Layout: [t,]px,py,p0..p7,l0..l7, 18 fields, or 19 with a leading
// timestamp.
func parseLiveFrame(b []byte) (SensorFrame, bool, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return SensorFrame{}, false, errors.New("empty payload")
	}

	parts := strings.Split(s, ",")
	want := 2 + 2*SensorCount
	if len(parts) != want && len(parts) != want+1 {
		return SensorFrame{}, false, fmt.Errorf("expected %d or %d fields, got %d", want, want+1, len(parts))
	}

	var frame SensorFrame
	var idx int
	hasT := len(parts) == want+1
	if hasT {
		t, err := parseF64(parts[0])
		if err != nil {
			return SensorFrame{}, false, err
		}
		frame.T = t
		idx = 1
	}

	px, err := parseF64(parts[idx])
	if err != nil {
		return SensorFrame{}, false, err
	}
	py, err := parseF64(parts[idx+1])
	if err != nil {
		return SensorFrame{}, false, err
	}
	frame.Pos = r2.Point{X: px, Y: py}
	idx += 2

	for i := 0; i < SensorCount; i++ {
		v, err := parseF64(parts[idx+i])
		if err != nil {
			return SensorFrame{}, false, err
		}
		frame.Proximity[i] = v
	}
	idx += SensorCount

	for i := 0; i < SensorCount; i++ {
		v, err := parseF64(parts[idx+i])
		if err != nil {
			return SensorFrame{}, false, err
		}
		frame.Lux[i] = v
	}

	return frame, hasT, nil
}

// parseF64 parses a float from a CSV field.
func parseF64(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
