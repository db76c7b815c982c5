package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/enginesim/internal/telemetry"
)

func TestDistanceIntegratesSpeed(t *testing.T) {
	m := NewDistance()

	m.Observe(telemetry.Sample{Time: 0, VehicleSpeed: 10})
	m.Observe(telemetry.Sample{Time: 1, VehicleSpeed: 10})
	m.Observe(telemetry.Sample{Time: 2, VehicleSpeed: 20})

	// 10 m/s over the first second, 20 m/s over the second.
	if got := m.Value(); math.Abs(got-30) > 1e-12 {
		t.Errorf("expected 30 m, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestPeakPowerTracksMaximum(t *testing.T) {
	m := NewPeakPower()

	for _, p := range []float64{12.5, 40.1, 33.0} {
		m.Observe(telemetry.Sample{PowerOutput: p})
	}

	if m.Value() != 40.1 {
		t.Errorf("expected 40.1, got %f", m.Value())
	}
}

func TestFuelUsedConvertsRate(t *testing.T) {
	m := NewFuelUsed()

	// 7.2 kg/h held for 30 minutes burns 3.6 kg.
	m.Observe(telemetry.Sample{Time: 0, FuelConsumption: 7.2})
	m.Observe(telemetry.Sample{Time: 1800, FuelConsumption: 7.2})

	if got := m.Value(); math.Abs(got-3.6) > 1e-9 {
		t.Errorf("expected 3.6 kg, got %f", got)
	}
}

func TestShiftCountIgnoresFirstSample(t *testing.T) {
	m := NewShiftCount()

	m.Observe(telemetry.Sample{Gear: 1})
	m.Observe(telemetry.Sample{Gear: 1})
	m.Observe(telemetry.Sample{Gear: 2})
	m.Observe(telemetry.Sample{Gear: 3})
	m.Observe(telemetry.Sample{Gear: 2})

	if m.Value() != 3 {
		t.Errorf("expected 3 shifts, got %f", m.Value())
	}
}

func TestOverheatFraction(t *testing.T) {
	m := NewOverheat(100)

	for _, temp := range []float64{90, 99.9, 100, 105} {
		m.Observe(telemetry.Sample{Temperature: temp})
	}

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestOverheatNoSamples(t *testing.T) {
	m := NewOverheat(100)
	if m.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %f", m.Value())
	}
}

func TestDefaultSetNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range DefaultSet() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
}
