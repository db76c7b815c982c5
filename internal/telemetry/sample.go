// Package telemetry records per-frame engine state and persists
// finished runs to disk as metadata plus a CSV sample log.
package telemetry

import "github.com/san-kum/enginesim/internal/engine"

// Sample is one flat telemetry frame, ready for CSV or JSON.
type Sample struct {
	Time                 float64 `json:"time"`
	RPM                  float64 `json:"rpm"`
	VehicleSpeed         float64 `json:"vehicleSpeed"` // m/s
	Gear                 int     `json:"gear"`
	Acceleration         float64 `json:"acceleration"`
	Jerk                 float64 `json:"jerk"`
	Temperature          float64 `json:"temperature"`
	WaterInjection       bool    `json:"waterInjection"`
	PowerOutput          float64 `json:"powerOutput"`
	Torque               float64 `json:"torque"`
	ThermalEfficiency    float64 `json:"thermalEfficiency"`
	VolumetricEfficiency float64 `json:"volumetricEfficiency"`
	FuelConsumption      float64 `json:"fuelConsumption"`
	BSFC                 float64 `json:"bsfc"`
	CO2Emissions         float64 `json:"co2Emissions"`
	NOxEmissions         float64 `json:"noxEmissions"`
}

// Snapshot captures the engine's current state at simulation time t.
func Snapshot(e *engine.Engine, t float64) Sample {
	return Sample{
		Time:                 t,
		RPM:                  e.RPM,
		VehicleSpeed:         e.VehicleSpeed,
		Gear:                 e.Gearbox.Gear(),
		Acceleration:         e.Acceleration,
		Jerk:                 e.Jerk,
		Temperature:          e.Temperature,
		WaterInjection:       e.WaterInjection,
		PowerOutput:          e.Metrics.PowerOutput,
		Torque:               e.Metrics.Torque,
		ThermalEfficiency:    e.Metrics.ThermalEfficiency,
		VolumetricEfficiency: e.Metrics.VolumetricEfficiency,
		FuelConsumption:      e.Metrics.FuelConsumption,
		BSFC:                 e.Metrics.BSFC,
		CO2Emissions:         e.Metrics.CO2Emissions,
		NOxEmissions:         e.Metrics.NOxEmissions,
	}
}
