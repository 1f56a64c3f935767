package config

import (
	_ "embed"
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v3"
)

// Preset is a named partial-configuration overlay selectable through
// the extends field. The catalog is embedded so the resolver and the
// generate command share one source of truth.
type Preset struct {
	Description string         `yaml:"description"`
	Overlay     map[string]any `yaml:"overlay"`
}

//go:embed presets.yaml
var presetsYAML []byte

var presets = mustLoadPresets()

func mustLoadPresets() map[string]Preset {
	var out map[string]Preset
	if err := yaml.Unmarshal(presetsYAML, &out); err != nil {
		panic(fmt.Sprintf("config: embedded preset catalog is invalid: %v", err))
	}
	return out
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
