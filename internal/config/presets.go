package config

import "sort"

// Presets are named parameter sets for common runs.
var Presets = map[string]*Config{
	"reference": {
		ParticleCount: 2000, Dimensions: 3, Mass: 1.0,
		TimeStep: 0.0001, StepCount: 100, Seed: 123456789,
	},
	"smoke": {
		ParticleCount: 50, Dimensions: 3, Mass: 1.0,
		TimeStep: 0.0001, StepCount: 10, Seed: 123456789,
	},
	"planar": {
		ParticleCount: 500, Dimensions: 2, Mass: 1.0,
		TimeStep: 0.0001, StepCount: 200, Seed: 123456789,
	},
	"long": {
		ParticleCount: 200, Dimensions: 3, Mass: 1.0,
		TimeStep: 0.0001, StepCount: 5000, Seed: 123456789,
	},
	"heavy": {
		ParticleCount: 500, Dimensions: 3, Mass: 10.0,
		TimeStep: 0.0005, StepCount: 500, Seed: 123456789,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
