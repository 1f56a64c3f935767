package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/klauern/hookline/internal/regexutil"
)

// ValidationReport is the structured outcome of validating a raw user
// configuration. Validation never fails: problems are reported here, and
// invalid paths are dropped before merging so defaults stay in effect.
type ValidationReport struct {
	Valid        bool
	Errors       []string
	Warnings     []string
	InvalidPaths []string
}

type fieldKind int

const (
	kindBool fieldKind = iota
	kindString
	kindNumber
	kindStringList
)

func (k fieldKind) String() string {
	switch k {
	case kindBool:
		return "boolean"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindStringList:
		return "list of strings"
	}
	return "unknown"
}

type fieldSpec struct {
	path string
	kind fieldKind
	min  *float64
}

func minOf(v float64) *float64 { return &v }

// fieldSpecs is the flat table of typed fields checked against the raw
// user object. Paths missing from the user config are simply skipped.
var fieldSpecs = []fieldSpec{
	{path: "guards.dangerousCommands.enabled", kind: kindBool},
	{path: "guards.dangerousCommands.patterns", kind: kindStringList},
	{path: "guards.dangerousCommands.allowList", kind: kindStringList},
	{path: "guards.protectedFiles.enabled", kind: kindBool},
	{path: "guards.protectedFiles.patterns", kind: kindStringList},
	{path: "guards.protectedBranches.enabled", kind: kindBool},
	{path: "guards.protectedBranches.branches", kind: kindStringList},
	{path: "guards.secrets.enabled", kind: kindBool},
	{path: "guards.secrets.patterns", kind: kindStringList},
	{path: "validators.checks.enabled", kind: kindBool},
	{path: "validators.checks.commands", kind: kindStringList},
	{path: "validators.checks.timeoutSeconds", kind: kindNumber, min: minOf(1)},
	{path: "trackers.audit.enabled", kind: kindBool},
	{path: "trackers.session.enabled", kind: kindBool},
	{path: "trackers.webhook.enabled", kind: kindBool},
	{path: "trackers.webhook.url", kind: kindString},
	{path: "trackers.webhook.timeoutSeconds", kind: kindNumber, min: minOf(1)},
	{path: "logging.enabled", kind: kindBool},
	{path: "logging.dir", kind: kindString},
	{path: "logging.format", kind: kindString},
	{path: "logging.rotation.maxAgeDays", kind: kindNumber, min: minOf(0)},
	{path: "logging.rotation.maxSizeMB", kind: kindNumber, min: minOf(1)},
	{path: "logging.rotation.maxBackups", kind: kindNumber, min: minOf(0)},
	{path: "logging.rotation.compress", kind: kindBool},
}

// regexListFields names list fields whose elements are regular
// expression sources. Elements must compile; patterns that compile but
// trip the safety heuristic only produce warnings.
var regexListFields = []string{
	"guards.dangerousCommands.patterns",
	"guards.dangerousCommands.allowList",
	"guards.secrets.patterns",
}

// knownTopLevelKeys are the sections the schema understands. "extends"
// is handled by the loader before validation but remains known so a
// standalone validate run does not warn about it.
var knownTopLevelKeys = map[string]bool{
	"extends":    true,
	"guards":     true,
	"validators": true,
	"trackers":   true,
	"logging":    true,
}

// Validate checks the raw user configuration (one JSON object) against
// the field tables. It never fails.
func Validate(raw []byte) ValidationReport {
	rep := ValidationReport{Valid: true}

	invalid := map[string]bool{}
	markInvalid := func(path, msg string) {
		rep.Errors = append(rep.Errors, msg)
		if !invalid[path] {
			invalid[path] = true
			rep.InvalidPaths = append(rep.InvalidPaths, path)
		}
	}

	for _, fs := range fieldSpecs {
		v := gjson.GetBytes(raw, fs.path)
		if !v.Exists() {
			continue
		}
		if !kindMatches(fs.kind, v) {
			markInvalid(fs.path, fmt.Sprintf("%s: expected %s, got %s", fs.path, fs.kind, jsonTypeName(v)))
			continue
		}
		if fs.min != nil && v.Float() < *fs.min {
			markInvalid(fs.path, fmt.Sprintf("%s: must be at least %v, got %v", fs.path, *fs.min, v.Float()))
		}
	}

	for _, path := range regexListFields {
		if invalid[path] {
			continue
		}
		v := gjson.GetBytes(raw, path)
		if !v.Exists() || !v.IsArray() {
			continue
		}
		for _, el := range v.Array() {
			if el.Type != gjson.String {
				continue
			}
			src := el.String()
			if _, err := regexp.Compile(src); err != nil {
				markInvalid(path, fmt.Sprintf("%s: invalid pattern %q: %v", path, src, err))
				continue
			}
			if safe, reason := regexutil.CheckSafety(src); !safe {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: pattern %q: %s", path, src, reason))
			}
		}
	}

	var unknown []string
	gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
		if !knownTopLevelKeys[key.String()] {
			unknown = append(unknown, key.String())
		}
		return true
	})
	sort.Strings(unknown)
	for _, k := range unknown {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("unknown configuration key %q", k))
	}

	rep.Valid = len(rep.Errors) == 0
	return rep
}

func kindMatches(k fieldKind, v gjson.Result) bool {
	switch k {
	case kindBool:
		return v.Type == gjson.True || v.Type == gjson.False
	case kindString:
		return v.Type == gjson.String
	case kindNumber:
		return v.Type == gjson.Number
	case kindStringList:
		if !v.IsArray() {
			return false
		}
		for _, el := range v.Array() {
			if el.Type != gjson.String {
				return false
			}
		}
		return true
	}
	return false
}

func jsonTypeName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	case v.Type == gjson.True || v.Type == gjson.False:
		return "boolean"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Null:
		return "null"
	}
	return "unknown"
}
