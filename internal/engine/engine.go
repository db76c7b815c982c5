package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// TransmissionMode selects between rule-based and player-driven shifting.
type TransmissionMode int

const (
	Automatic TransmissionMode = iota
	Manual
)

func (m TransmissionMode) String() string {
	if m == Manual {
		return "Manual"
	}
	return "Automatic"
}

// Spec holds the constants fixed at construction time.
type Spec struct {
	Bore                  float64 // m
	Stroke                float64 // m
	CompressionRatio      float64
	Cylinders             int
	RodLength             float64 // m
	DeckHeight            float64 // m
	IdleRPM               float64
	MaxRPM                float64
	MeanEffectivePressure float64 // Pa
	OptimalTemperature    float64 // °C
	WheelRadius           float64 // m
	FinalDriveRatio       float64
	VehicleMass           float64 // kg
	GearRatios            []float64
}

// DefaultSpec returns the stock three-cylinder configuration.
func DefaultSpec() Spec {
	return Spec{
		Bore:                  0.086,
		Stroke:                0.086,
		CompressionRatio:      11.0,
		Cylinders:             3,
		RodLength:             0.143,
		DeckHeight:            0.2,
		IdleRPM:               800,
		MaxRPM:                6000,
		MeanEffectivePressure: 1_000_000,
		OptimalTemperature:    90,
		WheelRadius:           0.3175,
		FinalDriveRatio:       3.73,
		VehicleMass:           1500,
		GearRatios:            DefaultGearRatios,
	}
}

// Validate checks the spec for values the formulas cannot survive.
func (s Spec) Validate() error {
	if s.Bore <= 0 || s.Stroke <= 0 || s.Cylinders <= 0 || s.CompressionRatio <= 1 {
		return fmt.Errorf("bore=%g stroke=%g cylinders=%d cr=%g: %w",
			s.Bore, s.Stroke, s.Cylinders, s.CompressionRatio, ErrInvalidSpec)
	}
	if s.IdleRPM <= 0 || s.MaxRPM <= s.IdleRPM {
		return fmt.Errorf("idle=%g max=%g: %w", s.IdleRPM, s.MaxRPM, ErrInvalidSpec)
	}
	if len(s.GearRatios) == 0 || s.FinalDriveRatio <= 0 || s.WheelRadius <= 0 {
		return fmt.Errorf("drivetrain: %w", ErrInvalidSpec)
	}
	return nil
}

// Notification is a transient dashboard message with a countdown.
type Notification struct {
	Message   string
	Remaining float64 // seconds
}

// Active reports whether the message should still be displayed.
func (n Notification) Active() bool {
	return n.Message != "" && n.Remaining > 0
}

// Tick counts the notification down and clears it on expiry.
func (n *Notification) Tick(dt float64) {
	if n.Remaining <= 0 {
		return
	}
	n.Remaining -= dt
	if n.Remaining <= 0 {
		*n = Notification{}
	}
}

// Engine is the single mutable simulation aggregate. Fields are
// exported for readers; all writes go through methods so the clamp
// invariants hold unconditionally.
type Engine struct {
	Spec Spec

	RPM            float64
	Acceleration   float64 // m/s²
	Jerk           float64 // m/s³
	Temperature    float64 // °C, state value before upgrade offsets
	WaterInjection bool
	VehicleSpeed   float64 // m/s

	Mode    TransmissionMode
	Gearbox *Gearbox
	Metrics Metrics
	Shift   Notification

	installed map[Upgrade]bool
	rng       *rand.Rand
}

// New builds an engine at idle-adjacent startup state. The random
// source drives jerk noise and water-injection toggling; pass a seeded
// source for reproducible runs. A nil rng falls back to a time seed.
func New(spec Spec, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		Spec:        spec,
		RPM:         1000,
		Temperature: spec.OptimalTemperature,
		Mode:        Automatic,
		Gearbox:     NewGearbox(spec.GearRatios),
		installed:   make(map[Upgrade]bool, len(AllUpgrades)),
		rng:         rng,
	}
	e.Recompute()
	return e
}

// ApplyUpgrade marks the named upgrade installed and refreshes the
// metrics. Unknown identifiers are rejected and leave state unchanged.
// Installing twice is a no-op beyond the recompute.
func (e *Engine) ApplyUpgrade(u Upgrade) error {
	if !u.Known() {
		return fmt.Errorf("apply upgrade %q: %w", u, ErrUnknownUpgrade)
	}
	e.installed[u] = true
	e.Recompute()
	return nil
}

// Installed returns the installed upgrades in declaration order.
func (e *Engine) Installed() []Upgrade {
	out := make([]Upgrade, 0, len(e.installed))
	for _, u := range AllUpgrades {
		if e.installed[u] {
			out = append(out, u)
		}
	}
	return out
}

// HasUpgrade reports whether u is installed.
func (e *Engine) HasUpgrade(u Upgrade) bool {
	return e.installed[u]
}

// SetWaterInjection switches the six-stroke water cycle and refreshes
// the metrics.
func (e *Engine) SetWaterInjection(active bool) {
	e.WaterInjection = active
	e.Recompute()
}

// ToggleTransmissionMode flips between automatic and manual shifting
// and returns the new mode.
func (e *Engine) ToggleTransmissionMode() TransmissionMode {
	if e.Mode == Automatic {
		e.Mode = Manual
	} else {
		e.Mode = Automatic
	}
	e.notify("Transmission mode: " + e.Mode.String())
	return e.Mode
}

func (e *Engine) notify(msg string) {
	e.Shift = Notification{Message: msg, Remaining: noticeSeconds}
}
