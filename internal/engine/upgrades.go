package engine

import "fmt"

// Upgrade identifies one of the fixed tuning upgrades.
type Upgrade string

const (
	DirectInjection         Upgrade = "direct_injection"
	Turbocharger            Upgrade = "turbocharger"
	VariableValveTiming     Upgrade = "variable_valve_timing"
	ExhaustGasRecirculation Upgrade = "exhaust_gas_recirculation"
	WasteHeatRecovery       Upgrade = "waste_heat_recovery"
	SmartCooling            Upgrade = "smart_cooling"
	AdvancedMaterials       Upgrade = "advanced_materials"
	EnhancedECU             Upgrade = "enhanced_ecu"
	CylinderDeactivation    Upgrade = "cylinder_deactivation"
	VariableCompression     Upgrade = "variable_compression"
	CeramicCoating          Upgrade = "ceramic_coating"
)

// AllUpgrades lists every upgrade in declaration order. Effects are
// commutative multipliers, so fold order only fixes float rounding.
var AllUpgrades = []Upgrade{
	DirectInjection,
	Turbocharger,
	VariableValveTiming,
	ExhaustGasRecirculation,
	WasteHeatRecovery,
	SmartCooling,
	AdvancedMaterials,
	EnhancedECU,
	CylinderDeactivation,
	VariableCompression,
	CeramicCoating,
}

// Effect is the pure influence of an upgrade on the derived metrics.
// Multiplier fields default to 1 (neutral); Temperature is an additive
// °C offset on the effective engine temperature.
type Effect struct {
	Power                float64
	ThermalEfficiency    float64
	VolumetricEfficiency float64
	FuelConsumption      float64
	NOxEmissions         float64
	Temperature          float64
}

func neutralEffect() Effect {
	return Effect{
		Power:                1,
		ThermalEfficiency:    1,
		VolumetricEfficiency: 1,
		FuelConsumption:      1,
		NOxEmissions:         1,
	}
}

// Effect returns the upgrade's multipliers. Unknown identifiers are
// neutral; callers reject them before they reach a fold.
func (u Upgrade) Effect() Effect {
	e := neutralEffect()
	switch u {
	case DirectInjection:
		e.FuelConsumption = 0.90
		e.ThermalEfficiency = 1.05
	case Turbocharger:
		e.Power = 1.20
		e.VolumetricEfficiency = 1.15
	case VariableValveTiming:
		e.VolumetricEfficiency = 1.10
		e.FuelConsumption = 0.95
	case ExhaustGasRecirculation:
		e.NOxEmissions = 0.70
	case WasteHeatRecovery:
		e.ThermalEfficiency = 1.05
	case SmartCooling:
		e.ThermalEfficiency = 1.02
	case AdvancedMaterials:
		e.Power = 1.05
	case EnhancedECU:
		e.FuelConsumption = 0.95
		e.Power = 1.05
	case CylinderDeactivation:
		e.FuelConsumption = 0.92
	case VariableCompression:
		e.ThermalEfficiency = 1.08
		e.FuelConsumption = 0.93
	case CeramicCoating:
		e.ThermalEfficiency = 1.03
		e.Temperature = -5
	}
	return e
}

// Known reports whether u is one of the fixed upgrade identifiers.
func (u Upgrade) Known() bool {
	for _, known := range AllUpgrades {
		if u == known {
			return true
		}
	}
	return false
}

// combine folds the effects of every installed upgrade into one.
func combine(installed map[Upgrade]bool) Effect {
	c := neutralEffect()
	for _, u := range AllUpgrades {
		if !installed[u] {
			continue
		}
		e := u.Effect()
		c.Power *= e.Power
		c.ThermalEfficiency *= e.ThermalEfficiency
		c.VolumetricEfficiency *= e.VolumetricEfficiency
		c.FuelConsumption *= e.FuelConsumption
		c.NOxEmissions *= e.NOxEmissions
		c.Temperature += e.Temperature
	}
	return c
}

// ParseUpgrade converts a user-supplied identifier into an Upgrade.
func ParseUpgrade(name string) (Upgrade, error) {
	u := Upgrade(name)
	if !u.Known() {
		return "", fmt.Errorf("parse upgrade %q: %w", name, ErrUnknownUpgrade)
	}
	return u, nil
}
