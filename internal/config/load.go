package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/klauern/hookline/internal/constants"
)

// maxExtendsDepth bounds extends-chain recursion.
const maxExtendsDepth = 10

// Snapshot carries the resolved configuration plus the validation report
// produced while building it. Exactly one snapshot exists per process
// invocation; it is read-only after Load returns.
type Snapshot struct {
	Config Config
	Report ValidationReport
	// Source is the path of the loaded file, empty when defaults were
	// used without a file.
	Source string
}

// Load resolves the configuration for dir. It never fails: a missing,
// unreadable, or malformed file degrades to the built-in defaults, and
// every problem encountered along the way is reported through the
// snapshot and the logger rather than returned.
func Load(dir string, log zerolog.Logger) *Snapshot {
	snap := &Snapshot{Config: Default(), Report: ValidationReport{Valid: true}}

	path := filepath.Join(dir, constants.ConfigFileName)
	raw, err := os.ReadFile(path) // #nosec G304 - resolver-owned config path
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("no configuration file, using defaults")
		return snap
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		log.Warn().Str("path", path).Msg("configuration is not a JSON object, using defaults")
		return snap
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	// The seen set is seeded with this file's own path so that even a
	// direct self-reference terminates. Each file visited along the
	// chain is added before its parent is resolved, which also stops
	// longer cycles (A->B->C->A).
	seen := map[string]bool{abs: true}
	overlay := resolveExtends(raw, filepath.Dir(abs), seen, 0, log)

	userRaw, err := sjson.DeleteBytes(raw, "extends")
	if err != nil {
		userRaw = raw
	}
	rep := Validate(userRaw)
	for _, p := range rep.InvalidPaths {
		if cleaned, err := sjson.DeleteBytes(userRaw, p); err == nil {
			userRaw = cleaned
		}
	}
	for _, w := range rep.Warnings {
		log.Warn().Str("path", path).Msg(w)
	}
	for _, e := range rep.Errors {
		log.Error().Str("path", path).Msg(e)
	}

	var user map[string]any
	if err := json.Unmarshal(userRaw, &user); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("configuration did not survive cleaning, using defaults")
		return snap
	}

	merged := Merge(DefaultsMap(), overlay)
	merged = Merge(merged, user)

	cfg, err := decode(merged)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("merged configuration does not decode, using defaults")
		return snap
	}

	snap.Config = cfg
	snap.Report = rep
	snap.Source = path
	return snap
}

// resolveExtends returns the extends-chain contribution for one file.
// Contributions apply grandparent-first: a file's own fields are merged
// over whatever its parent chain contributed.
func resolveExtends(raw []byte, dir string, seen map[string]bool, depth int, log zerolog.Logger) map[string]any {
	ext := gjson.GetBytes(raw, "extends")
	if !ext.Exists() {
		return map[string]any{}
	}
	if ext.Type != gjson.String || ext.String() == "" {
		log.Warn().Msg("extends must be a preset name or relative path, ignoring")
		return map[string]any{}
	}
	if depth >= maxExtendsDepth {
		log.Warn().Int("depth", depth).Msg("extends chain exceeds maximum depth, ignoring further inheritance")
		return map[string]any{}
	}

	name := ext.String()
	if preset, ok := LookupPreset(name); ok {
		return cloneTree(preset.Overlay)
	}

	path := filepath.Join(dir, name)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		log.Warn().Str("path", abs).Msg("extends cycle detected, ignoring")
		return map[string]any{}
	}
	seen[abs] = true

	parentRaw, err := os.ReadFile(abs) // #nosec G304 - user-declared extends path
	if err != nil {
		log.Warn().Str("path", abs).Err(err).Msg("extends target not readable, ignoring")
		return map[string]any{}
	}
	if !gjson.ValidBytes(parentRaw) || !gjson.ParseBytes(parentRaw).IsObject() {
		log.Warn().Str("path", abs).Msg("extends target is not a JSON object, ignoring")
		return map[string]any{}
	}

	contrib := resolveExtends(parentRaw, filepath.Dir(abs), seen, depth+1, log)

	cleaned, err := sjson.DeleteBytes(parentRaw, "extends")
	if err != nil {
		cleaned = parentRaw
	}
	var parent map[string]any
	if err := json.Unmarshal(cleaned, &parent); err != nil {
		log.Warn().Str("path", abs).Err(err).Msg("extends target does not decode, ignoring")
		return contrib
	}
	return Merge(contrib, parent)
}

// decode materializes a merged JSON tree into the typed configuration.
func decode(tree map[string]any) (Config, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
