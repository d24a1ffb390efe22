package config

import (
	"sort"

	"github.com/san-kum/oceanebm/internal/forcing"
	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/sim"
)

var Presets = map[string]*Config{
	// Control climate near the published parameter table.
	"bewf23": {
		Name: "bewf23", Years: 200,
		Coefficients: DefaultCoefficients(),
		Forcing:      forcing.Spec{Kind: "constant", Years: 200},
		Sim:          sim.DefaultConfig(),
	},
	"abrupt4x": {
		Name: "abrupt4x", Years: 300,
		Coefficients: DefaultCoefficients(),
		Forcing:      forcing.Spec{Kind: "step", Years: 300, Onset: 100, Value: 7.4},
		Sim:          sim.DefaultConfig(),
	},
	"ramp": {
		Name: "ramp", Years: 400,
		Coefficients: DefaultCoefficients(),
		Forcing:      forcing.Spec{Kind: "ramp", Years: 400, Start: 0, End: 8},
		Sim:          sim.DefaultConfig(),
	},
	// Snowball-leaning start: brighter OLR baseline and sluggish vertical mixing.
	"cold": {
		Name: "cold", Years: 200,
		Coefficients: physics.Coefficients{KvW: 0.7, KvI: 0.01, Ds: 0.6, Dd: 0.02, A: 205},
		Forcing:      forcing.Spec{Kind: "constant", Years: 200, Value: -4},
		Sim:          sim.DefaultConfig(),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
