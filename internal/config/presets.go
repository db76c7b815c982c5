package config

// Presets are named starting configurations for common scenarios.
var Presets = map[string]func() *Config{
	"stock":     stockPreset,
	"eco":       ecoPreset,
	"sport":     sportPreset,
	"endurance": endurancePreset,
}

// GetPreset returns a fresh config for the named preset, or nil when
// the name is unknown.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets returns the preset names in a fixed order.
func ListPresets() []string {
	return []string{"stock", "eco", "sport", "endurance"}
}

func stockPreset() *Config {
	return DefaultConfig()
}

func ecoPreset() *Config {
	cfg := DefaultConfig()
	cfg.Upgrades = []string{
		"direct_injection",
		"variable_valve_timing",
		"exhaust_gas_recirculation",
		"cylinder_deactivation",
	}
	cfg.Cruise.TargetKMH = 70
	return cfg
}

func sportPreset() *Config {
	cfg := DefaultConfig()
	cfg.Transmission = "manual"
	cfg.Upgrades = []string{
		"turbocharger",
		"enhanced_ecu",
		"advanced_materials",
		"variable_compression",
	}
	cfg.Engine.MaxRPM = 7200
	return cfg
}

func endurancePreset() *Config {
	cfg := DefaultConfig()
	cfg.Upgrades = []string{
		"smart_cooling",
		"ceramic_coating",
		"waste_heat_recovery",
		"advanced_materials",
	}
	cfg.Sim.Duration = 60
	return cfg
}
