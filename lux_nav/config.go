package lux_nav

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NavConfig bundles the thresholds and gains of the navigation core.
//
// Sensor convention: a higher luminosity reading means brighter; the
// tracker follows the maximum mean reading. All distances are in the
// simulator's world units, speeds in rad/s.
type NavConfig struct {
	MaxSpeed    float64 `json:"max_speed" validate:"gt=0"`
	CruiseSpeed float64 `json:"cruise_speed" validate:"gte=0"`

	SideWallDistance   float64 `json:"side_wall_distance" validate:"gte=0"`
	FrontObstacleLimit float64 `json:"front_obstacle_limit" validate:"gte=0"`
	RotateSpeed        float64 `json:"rotate_speed" validate:"gte=0"`

	OriginRadius    float64 `json:"origin_radius" validate:"gte=0"`
	LightRadius     float64 `json:"light_radius" validate:"gte=0"`
	MinExploreTicks int     `json:"min_explore_ticks" validate:"gte=0"`

	// Steering tuning surface.
	WallDeadBand  float64 `json:"wall_dead_band" validate:"gte=0"`
	WallGain      float64 `json:"wall_gain" validate:"gte=0"`
	SlowFactor    float64 `json:"slow_factor" validate:"gte=0,lte=1"`
	LightSeekGain float64 `json:"light_seek_gain" validate:"gte=0"`

	// DriveModeOverride forces the controller into a fixed steering law,
	// bypassing phase transitions. Tuning aid only.
	DriveModeOverride *DriveMode `json:"drive_mode_override"`
}

// LiveConfig controls UDP input settings for telemetry frames.
type LiveConfig struct {
	UDPAddr    string `json:"udp_addr"`
	ReadBuffer int    `json:"read_buffer"`
}

// OutputConfig controls UDP output settings for wheel commands.
type OutputConfig struct {
	UDPAddr string `json:"udp_addr"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Enabled bool `json:"enabled"`
	Debug   bool `json:"debug"`
}

// AppConfig aggregates all configuration sections.
type AppConfig struct {
	Hz     float64      `json:"hz" validate:"gt=0"`
	Nav    NavConfig    `json:"nav"`
	Live   LiveConfig   `json:"live"`
	Output OutputConfig `json:"output"`
	Viz    VizConfig    `json:"viz"`
	Log    LogConfig    `json:"log"`
}

// LoadConfig reads the JSON config from disk.
func LoadConfig(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the control loop cannot run with.
// Called once before the loop starts; validation failures are fatal.
func (cfg AppConfig) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Nav.CruiseSpeed > cfg.Nav.MaxSpeed {
		return fmt.Errorf("config: cruise_speed %.3f exceeds max_speed %.3f",
			cfg.Nav.CruiseSpeed, cfg.Nav.MaxSpeed)
	}
	if cfg.Nav.RotateSpeed > cfg.Nav.MaxSpeed {
		return fmt.Errorf("config: rotate_speed %.3f exceeds max_speed %.3f",
			cfg.Nav.RotateSpeed, cfg.Nav.MaxSpeed)
	}
	return nil
}

// ParseDriveMode converts a mode name into a DriveMode enum.
func ParseDriveMode(value string) (DriveMode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	switch normalized {
	case "WALL_FOLLOW":
		return ModeWallFollow, nil
	case "SEEK_LIGHT":
		return ModeSeekLight, nil
	default:
		return ModeWallFollow, fmt.Errorf("unknown drive mode %q", value)
	}
}

// UnmarshalJSON allows drive modes to be loaded from JSON strings.
func (m *DriveMode) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	parsed, err := ParseDriveMode(*raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
