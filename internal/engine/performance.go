package engine

import "math"

const (
	// Otto-cycle exponent γ−1 with γ = 1.4 for air.
	ottoExponent = 0.4
	// Lower heating value of gasoline, kJ/kg.
	fuelEnergyDensity = 43000
	// Base volumetric efficiency before upgrades, restored every pass.
	baseVolumetricEfficiency = 0.9
	// CO2 mass per gram of fuel burned, gasoline approximation.
	co2PerFuelGram = 3.2

	minVolumetricEfficiency = 0.7
	maxVolumetricEfficiency = 1.0
)

// Recompute rebuilds the full derived-metric set from the current
// state. It must run after any mutation that can influence a metric
// (rpm, temperature, upgrades, water injection). Callers guarantee
// rpm > 0 via the idle floor; the model itself does not guard it.
//
// Dependency order: geometry first, then power and torque, then the
// finalized thermal efficiency (base Otto value, upgrade multipliers,
// water injection, temperature deviation), and only then the fuel and
// emission figures derived from it. Upgrade fuel/NOx multipliers apply
// to the freshly derived values, so each installed upgrade acts
// exactly once per pass.
func (e *Engine) Recompute() {
	s := e.Spec
	ef := combine(e.installed)
	var m Metrics

	m.Displacement = math.Pi / 4 * s.Bore * s.Bore * s.Stroke * float64(s.Cylinders)
	m.RodStrokeRatio = s.RodLength / s.Stroke
	m.PistonSpeed = 2 * s.Stroke * e.RPM / 60

	// Torque derives from pre-upgrade power: power upgrades do not
	// retroactively scale it.
	power := s.MeanEffectivePressure * m.Displacement * e.RPM / 120000
	m.Torque = power * 1000 * 60 / (2 * math.Pi * e.RPM)
	m.PowerOutput = power * ef.Power

	m.EngineTemperature = e.Temperature + ef.Temperature

	eff := (1 - math.Pow(s.CompressionRatio, -ottoExponent)) * ef.ThermalEfficiency
	if e.WaterInjection {
		eff *= 1.1
	}
	if dev := math.Abs(m.EngineTemperature - s.OptimalTemperature); dev > 10 {
		eff *= 1 - 0.001*dev
	}
	m.ThermalEfficiency = eff

	m.VolumetricEfficiency = clamp(baseVolumetricEfficiency*ef.VolumetricEfficiency,
		minVolumetricEfficiency, maxVolumetricEfficiency)

	m.FuelConsumption = m.PowerOutput * 3600 / (fuelEnergyDensity * eff) * ef.FuelConsumption
	m.BSFC = m.FuelConsumption * 3600 / m.PowerOutput
	m.CO2Emissions = m.BSFC * co2PerFuelGram

	m.NOxEmissions = 0.01 * m.PowerOutput * (1 + (m.EngineTemperature-90)/100) * ef.NOxEmissions
	if e.WaterInjection {
		m.NOxEmissions *= 0.8
	}

	e.Metrics = m
	e.updateVehicleSpeed()
}

// updateVehicleSpeed derives road speed from engine rpm through the
// current gear and final drive.
func (e *Engine) updateVehicleSpeed() {
	wheelRPM := e.RPM / (e.Gearbox.Ratio() * e.Spec.FinalDriveRatio)
	e.VehicleSpeed = wheelRPM * 2 * math.Pi * e.Spec.WheelRadius / 60
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
