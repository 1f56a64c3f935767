// Package generator writes starter configuration files.
package generator

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
	"github.com/klauern/hookline/internal/core"
)

// Options controls config generation.
type Options struct {
	// Dir is the directory the config file is written into.
	Dir string
	// Preset, when set, generates a thin file extending the named
	// preset instead of spelling out every default.
	Preset string
	// Force allows overwriting an existing config file.
	Force bool
}

// WriteConfig writes a claude-hooks.config.json into opts.Dir and
// returns the written path. Without a preset the file spells out the
// full built-in defaults so every knob is visible and editable; with a
// preset it contains only an extends reference.
func WriteConfig(fsys core.FileSystem, opts Options) (string, error) {
	path := filepath.Join(opts.Dir, constants.ConfigFileName)
	if _, err := fsys.Stat(path); err == nil && !opts.Force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	var tree map[string]any
	if opts.Preset != "" {
		if _, ok := config.LookupPreset(opts.Preset); !ok {
			return "", fmt.Errorf("unknown preset %q (available: %s)", opts.Preset, strings.Join(config.PresetNames(), ", "))
		}
		tree = map[string]any{"extends": opts.Preset}
	} else {
		tree = config.DefaultsMap()
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	if err := fsys.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", opts.Dir, err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
