package config

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/enginesim/internal/control"
	"github.com/san-kum/enginesim/internal/engine"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultDuration  = 10.0
	DefaultFrameRate = 60
	DefaultKp        = 2.0
	DefaultKi        = 0.1
	DefaultKd        = 0.5
	DefaultCruiseKMH = 90.0
)

type Config struct {
	Engine       EngineConfig `yaml:"engine"`
	Sim          SimConfig    `yaml:"sim"`
	Transmission string       `yaml:"transmission"`
	Upgrades     []string     `yaml:"upgrades"`
	Cruise       CruiseConfig `yaml:"cruise"`
}

type EngineConfig struct {
	Bore                  float64 `yaml:"bore"`
	Stroke                float64 `yaml:"stroke"`
	CompressionRatio      float64 `yaml:"compression_ratio"`
	Cylinders             int     `yaml:"cylinders"`
	RodLength             float64 `yaml:"rod_length"`
	DeckHeight            float64 `yaml:"deck_height"`
	IdleRPM               float64 `yaml:"idle_rpm"`
	MaxRPM                float64 `yaml:"max_rpm"`
	MeanEffectivePressure float64 `yaml:"mean_effective_pressure"`
	OptimalTemperature    float64 `yaml:"optimal_temperature"`
	WheelRadius           float64 `yaml:"wheel_radius"`
	FinalDriveRatio       float64 `yaml:"final_drive_ratio"`
	VehicleMass           float64 `yaml:"vehicle_mass"`
}

type SimConfig struct {
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	Seed      int64   `yaml:"seed"`
	FrameRate int     `yaml:"frame_rate"`
}

type CruiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	TargetKMH float64 `yaml:"target_kmh"`
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
}

func DefaultConfig() *Config {
	s := engine.DefaultSpec()
	return &Config{
		Engine: EngineConfig{
			Bore:                  s.Bore,
			Stroke:                s.Stroke,
			CompressionRatio:      s.CompressionRatio,
			Cylinders:             s.Cylinders,
			RodLength:             s.RodLength,
			DeckHeight:            s.DeckHeight,
			IdleRPM:               s.IdleRPM,
			MaxRPM:                s.MaxRPM,
			MeanEffectivePressure: s.MeanEffectivePressure,
			OptimalTemperature:    s.OptimalTemperature,
			WheelRadius:           s.WheelRadius,
			FinalDriveRatio:       s.FinalDriveRatio,
			VehicleMass:           s.VehicleMass,
		},
		Sim: SimConfig{
			Dt:        DefaultDt,
			Duration:  DefaultDuration,
			FrameRate: DefaultFrameRate,
		},
		Transmission: "automatic",
		Cruise: CruiseConfig{
			TargetKMH: DefaultCruiseKMH,
			Kp:        DefaultKp,
			Ki:        DefaultKi,
			Kd:        DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Spec maps the engine section onto a validated engine spec.
func (c *Config) Spec() engine.Spec {
	return engine.Spec{
		Bore:                  c.Engine.Bore,
		Stroke:                c.Engine.Stroke,
		CompressionRatio:      c.Engine.CompressionRatio,
		Cylinders:             c.Engine.Cylinders,
		RodLength:             c.Engine.RodLength,
		DeckHeight:            c.Engine.DeckHeight,
		IdleRPM:               c.Engine.IdleRPM,
		MaxRPM:                c.Engine.MaxRPM,
		MeanEffectivePressure: c.Engine.MeanEffectivePressure,
		OptimalTemperature:    c.Engine.OptimalTemperature,
		WheelRadius:           c.Engine.WheelRadius,
		FinalDriveRatio:       c.Engine.FinalDriveRatio,
		VehicleMass:           c.Engine.VehicleMass,
		GearRatios:            engine.DefaultGearRatios,
	}
}

// Mode parses the transmission field, defaulting to automatic.
func (c *Config) Mode() engine.TransmissionMode {
	if strings.EqualFold(c.Transmission, "manual") {
		return engine.Manual
	}
	return engine.Automatic
}

// BuildEngine validates the spec, constructs the engine and applies
// the configured transmission mode and upgrades. A nil rng keeps the
// engine's time-seeded default.
func (c *Config) BuildEngine(rng *rand.Rand) (*engine.Engine, error) {
	spec := c.Spec()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	e := engine.New(spec, rng)
	e.Mode = c.Mode()

	for _, name := range c.Upgrades {
		u, err := engine.ParseUpgrade(name)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := e.ApplyUpgrade(u); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// BuildCruise constructs the cruise controller from the config,
// converting the km/h target to m/s.
func (c *Config) BuildCruise() *control.Cruise {
	cruise := control.NewCruise(c.Cruise.TargetKMH / 3.6)
	cruise.PID.Kp = c.Cruise.Kp
	cruise.PID.Ki = c.Cruise.Ki
	cruise.PID.Kd = c.Cruise.Kd
	cruise.Enabled = c.Cruise.Enabled
	return cruise
}
