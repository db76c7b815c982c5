package engine

// Metrics holds every derived performance figure. The whole struct is
// rebuilt from scratch on each recompute; nothing in it is hand-set.
type Metrics struct {
	Displacement         float64 `json:"displacement"`         // m³
	RodStrokeRatio       float64 `json:"rodStrokeRatio"`       // dimensionless
	PistonSpeed          float64 `json:"pistonSpeed"`          // m/s mean
	PowerOutput          float64 `json:"powerOutput"`          // kW
	Torque               float64 `json:"torque"`               // Nm
	ThermalEfficiency    float64 `json:"thermalEfficiency"`    // 0..1
	VolumetricEfficiency float64 `json:"volumetricEfficiency"` // clamped 0.7..1.0
	FuelConsumption      float64 `json:"fuelConsumption"`      // kg/h
	BSFC                 float64 `json:"bsfc"`                 // g/kWh
	CO2Emissions         float64 `json:"co2Emissions"`         // g/kWh
	NOxEmissions         float64 `json:"noxEmissions"`         // g/kWh
	EngineTemperature    float64 `json:"engineTemperature"`    // °C effective, after upgrade offsets
}
