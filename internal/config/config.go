// Package config loads, inherits, validates, and merges the layered
// claude-hooks configuration into one immutable snapshot per process
// invocation.
package config

import (
	"encoding/json"

	"github.com/klauern/hookline/internal/constants"
)

// Toggle is an optional enabled flag carried by a feature subtree. A nil
// Enabled means "use the default", which for every feature is enabled.
type Toggle struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// On reports whether the toggle is enabled, defaulting to true.
func (t Toggle) On() bool {
	return t.Enabled == nil || *t.Enabled
}

// Config is the authoritative configuration tree for one process
// invocation. It is built once by Load and never mutated afterward.
type Config struct {
	Guards     GuardsConfig     `json:"guards"`
	Validators ValidatorsConfig `json:"validators"`
	Trackers   TrackersConfig   `json:"trackers"`
	Logging    LoggingConfig    `json:"logging"`
}

// GuardsConfig holds settings for features that can block an action.
type GuardsConfig struct {
	DangerousCommands DangerousCommandsConfig `json:"dangerousCommands"`
	ProtectedFiles    ProtectedFilesConfig    `json:"protectedFiles"`
	ProtectedBranches ProtectedBranchesConfig `json:"protectedBranches"`
	Secrets           SecretsConfig           `json:"secrets"`
}

// DangerousCommandsConfig configures the shell-command guard.
type DangerousCommandsConfig struct {
	Toggle
	Patterns  []string `json:"patterns"`
	AllowList []string `json:"allowList"`
}

// ProtectedFilesConfig configures the file-path guard.
type ProtectedFilesConfig struct {
	Toggle
	Patterns []string `json:"patterns"`
}

// ProtectedBranchesConfig configures the git-branch guard.
type ProtectedBranchesConfig struct {
	Toggle
	Branches []string `json:"branches"`
}

// SecretsConfig configures the secret-pattern guard.
type SecretsConfig struct {
	Toggle
	Patterns []string `json:"patterns"`
}

// ValidatorsConfig holds settings for post-condition validators.
type ValidatorsConfig struct {
	Checks ChecksConfig `json:"checks"`
}

// ChecksConfig configures the post-action command validator.
type ChecksConfig struct {
	Toggle
	Commands       []string `json:"commands"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

// TrackersConfig holds settings for non-blocking trackers.
type TrackersConfig struct {
	Audit   Toggle        `json:"audit"`
	Session Toggle        `json:"session"`
	Webhook WebhookConfig `json:"webhook"`
}

// WebhookConfig configures the webhook notifier.
type WebhookConfig struct {
	Toggle
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// LoggingConfig configures audit log placement and rotation.
type LoggingConfig struct {
	Toggle
	Dir      string         `json:"dir"`
	Format   string         `json:"format"`
	Rotation RotationConfig `json:"rotation"`
}

// RotationConfig bounds audit log growth.
type RotationConfig struct {
	MaxAgeDays int  `json:"maxAgeDays"`
	MaxSizeMB  int  `json:"maxSizeMB"`
	MaxBackups int  `json:"maxBackups"`
	Compress   bool `json:"compress"`
}

// Logging output formats
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat reports whether format is a supported log format.
func IsValidLoggingFormat(format string) bool {
	return format == LoggingFormatJSONL || format == LoggingFormatPretty
}

// Default returns the built-in configuration that applies when no file,
// extends chain, or user field overrides it.
func Default() Config {
	return Config{
		Guards: GuardsConfig{
			DangerousCommands: DangerousCommandsConfig{
				Patterns: []string{
					`rm\s+-[a-z]*[rf][a-z]*\s+(/|~|\$HOME)(\s|$)`,
					`:\(\)\s*\{\s*:\|:&\s*\};:`,
					`mkfs(\.[a-z0-9]+)?\s`,
					`dd\s+if=.*of=/dev/(sd|hd|nvme)`,
					`chmod\s+777\s+/(\s|$)`,
					`curl\s+[^|]*\|\s*(ba)?sh`,
					`wget\s+[^|]*\|\s*(ba)?sh`,
				},
				AllowList: nil,
			},
			ProtectedFiles: ProtectedFilesConfig{
				Patterns: []string{
					".env",
					".env.*",
					"*.pem",
					"id_rsa*",
					"*.key",
				},
			},
			ProtectedBranches: ProtectedBranchesConfig{
				Branches: []string{"main", "master"},
			},
			Secrets: SecretsConfig{
				Patterns: []string{
					`(?i)aws_secret_access_key\s*[=:]\s*\S+`,
					`(?i)api[_-]?key\s*[=:]\s*['"][A-Za-z0-9_\-]{16,}['"]`,
					`-----BEGIN (RSA|EC|OPENSSH|PGP) PRIVATE KEY-----`,
					`ghp_[A-Za-z0-9]{36}`,
					`xox[baprs]-[A-Za-z0-9\-]{10,}`,
				},
			},
		},
		Validators: ValidatorsConfig{
			Checks: ChecksConfig{
				Toggle:         Toggle{Enabled: boolPtr(false)},
				Commands:       nil,
				TimeoutSeconds: 60,
			},
		},
		Trackers: TrackersConfig{
			Audit:   Toggle{},
			Session: Toggle{},
			Webhook: WebhookConfig{
				Toggle:         Toggle{Enabled: boolPtr(false)},
				TimeoutSeconds: 5,
			},
		},
		Logging: LoggingConfig{
			Toggle: Toggle{Enabled: boolPtr(false)},
			Dir:    constants.DefaultLogDir,
			Format: LoggingFormatJSONL,
			Rotation: RotationConfig{
				MaxAgeDays: 30,
				MaxSizeMB:  10,
				MaxBackups: 5,
				Compress:   true,
			},
		},
	}
}

// DefaultsMap returns the built-in defaults as a plain JSON tree, the
// form the deep merge operates on.
func DefaultsMap() map[string]any {
	data, err := json.Marshal(Default())
	if err != nil {
		panic("config: defaults do not marshal: " + err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic("config: defaults do not round-trip: " + err.Error())
	}
	return m
}

func boolPtr(b bool) *bool { return &b }

// toggles binds each feature's configPath to a typed accessor. This is
// the single place the dot-path indirection is resolved; features never
// walk the tree themselves.
var toggles = map[string]func(*Config) Toggle{
	"guards.dangerousCommands": func(c *Config) Toggle { return c.Guards.DangerousCommands.Toggle },
	"guards.protectedFiles":    func(c *Config) Toggle { return c.Guards.ProtectedFiles.Toggle },
	"guards.protectedBranches": func(c *Config) Toggle { return c.Guards.ProtectedBranches.Toggle },
	"guards.secrets":           func(c *Config) Toggle { return c.Guards.Secrets.Toggle },
	"validators.checks":        func(c *Config) Toggle { return c.Validators.Checks.Toggle },
	"trackers.audit":           func(c *Config) Toggle { return c.Trackers.Audit },
	"trackers.session":         func(c *Config) Toggle { return c.Trackers.Session },
	"trackers.webhook":         func(c *Config) Toggle { return c.Trackers.Webhook.Toggle },
	"logging":                  func(c *Config) Toggle { return c.Logging.Toggle },
}

// FeatureEnabled reports whether the feature bound to path is enabled.
// An empty path means always on, and an unknown path fails open: a
// misconfigured feature still runs rather than silently vanishing.
func FeatureEnabled(c *Config, path string) bool {
	if path == "" {
		return true
	}
	accessor, ok := toggles[path]
	if !ok {
		return true
	}
	return accessor(c).On()
}
