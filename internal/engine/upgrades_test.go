package engine

import (
	"errors"
	"math"
	"testing"
)

func TestApplyUpgradeRejectsUnknown(t *testing.T) {
	e := newTestEngine(1)
	before := e.Metrics

	err := e.ApplyUpgrade(Upgrade("nitrous_oxide"))
	if !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got %v", err)
	}
	if e.Metrics != before {
		t.Error("failed upgrade mutated metrics")
	}
	if len(e.Installed()) != 0 {
		t.Errorf("failed upgrade left %v installed", e.Installed())
	}
}

func TestApplyUpgradeIsIdempotent(t *testing.T) {
	e := newTestEngine(1)

	if err := e.ApplyUpgrade(Turbocharger); err != nil {
		t.Fatal(err)
	}
	once := e.Metrics

	if err := e.ApplyUpgrade(Turbocharger); err != nil {
		t.Fatal(err)
	}
	if e.Metrics != once {
		t.Error("second install changed metrics")
	}
	if n := len(e.Installed()); n != 1 {
		t.Errorf("expected 1 installed upgrade, got %d", n)
	}
}

func TestTurbochargerScalesPowerNotTorque(t *testing.T) {
	e := newTestEngine(1)
	base := e.Metrics

	if err := e.ApplyUpgrade(Turbocharger); err != nil {
		t.Fatal(err)
	}

	if got, want := e.Metrics.PowerOutput, base.PowerOutput*1.20; math.Abs(got-want) > 1e-9 {
		t.Errorf("power: got %f, want %f", got, want)
	}
	if e.Metrics.Torque != base.Torque {
		t.Errorf("torque moved with a power upgrade: %f -> %f", base.Torque, e.Metrics.Torque)
	}
	if e.Metrics.VolumetricEfficiency != 1.0 {
		t.Errorf("volumetric efficiency not clamped at 1.0: %f", e.Metrics.VolumetricEfficiency)
	}
}

func TestUpgradeEffectAppliesOncePerRecompute(t *testing.T) {
	e := newTestEngine(1)
	base := e.Metrics

	if err := e.ApplyUpgrade(DirectInjection); err != nil {
		t.Fatal(err)
	}
	installed := e.Metrics

	// Repeated recomputes must be pure: no compounding multipliers.
	for i := 0; i < 5; i++ {
		e.Recompute()
	}
	if e.Metrics != installed {
		t.Fatal("recompute compounded upgrade effects")
	}

	wantEff := base.ThermalEfficiency * 1.05
	if math.Abs(e.Metrics.ThermalEfficiency-wantEff) > 1e-9 {
		t.Errorf("thermal efficiency: got %f, want %f", e.Metrics.ThermalEfficiency, wantEff)
	}
	// Fuel rate: divided by the improved efficiency, then the direct
	// injection multiplier.
	wantFuel := base.FuelConsumption / 1.05 * 0.90
	if math.Abs(e.Metrics.FuelConsumption-wantFuel) > 1e-9 {
		t.Errorf("fuel consumption: got %f, want %f", e.Metrics.FuelConsumption, wantFuel)
	}
}

func TestCeramicCoatingOffsetsEffectiveTemperature(t *testing.T) {
	e := newTestEngine(1)
	base := e.Metrics

	if err := e.ApplyUpgrade(CeramicCoating); err != nil {
		t.Fatal(err)
	}

	if e.Temperature != e.Spec.OptimalTemperature {
		t.Errorf("upgrade mutated state temperature to %f", e.Temperature)
	}
	if got, want := e.Metrics.EngineTemperature, e.Temperature-5; got != want {
		t.Errorf("effective temperature: got %f, want %f", got, want)
	}

	// NOx responds to the effective temperature, 5°C below optimal.
	wantNOx := 0.01 * e.Metrics.PowerOutput * (1 + (e.Metrics.EngineTemperature-90)/100)
	if math.Abs(e.Metrics.NOxEmissions-wantNOx) > 1e-9 {
		t.Errorf("nox: got %f, want %f", e.Metrics.NOxEmissions, wantNOx)
	}
	if e.Metrics.NOxEmissions >= base.NOxEmissions {
		t.Error("cooler effective temperature should lower nox")
	}
}

func TestExhaustGasRecirculationCutsNOx(t *testing.T) {
	e := newTestEngine(1)
	base := e.Metrics

	if err := e.ApplyUpgrade(ExhaustGasRecirculation); err != nil {
		t.Fatal(err)
	}

	if got, want := e.Metrics.NOxEmissions, base.NOxEmissions*0.70; math.Abs(got-want) > 1e-9 {
		t.Errorf("nox: got %f, want %f", got, want)
	}
}

func TestCombineFoldsAllInstalled(t *testing.T) {
	installed := map[Upgrade]bool{
		DirectInjection: true,
		Turbocharger:    true,
		EnhancedECU:     true,
	}

	c := combine(installed)

	if got, want := c.Power, 1.20*1.05; math.Abs(got-want) > 1e-12 {
		t.Errorf("power: got %f, want %f", got, want)
	}
	if got, want := c.FuelConsumption, 0.90*0.95; math.Abs(got-want) > 1e-12 {
		t.Errorf("fuel: got %f, want %f", got, want)
	}
	if c.Temperature != 0 {
		t.Errorf("temperature offset: got %f, want 0", c.Temperature)
	}
}

func TestParseUpgrade(t *testing.T) {
	u, err := ParseUpgrade("variable_valve_timing")
	if err != nil {
		t.Fatal(err)
	}
	if u != VariableValveTiming {
		t.Errorf("got %q", u)
	}

	if _, err := ParseUpgrade("flux_capacitor"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("expected ErrUnknownUpgrade, got %v", err)
	}
}
