package config

import (
	"strings"
	"testing"
)

func TestValidateCleanInput(t *testing.T) {
	raw := []byte(`{
		"guards": {
			"dangerousCommands": {"enabled": true, "patterns": ["rm -rf /"]},
			"secrets": {"enabled": false}
		},
		"logging": {"enabled": true, "dir": "logs"}
	}`)

	rep := Validate(raw)
	if !rep.Valid {
		t.Fatalf("expected valid, got errors: %v", rep.Errors)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", rep.Warnings)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	raw := []byte(`{"guards": {"dangerousCommands": {"enabled": "yes"}}}`)

	rep := Validate(raw)
	if rep.Valid {
		t.Fatal("expected invalid report")
	}
	if len(rep.InvalidPaths) != 1 || rep.InvalidPaths[0] != "guards.dangerousCommands.enabled" {
		t.Errorf("unexpected invalid paths: %v", rep.InvalidPaths)
	}
}

func TestValidateNumericMinimum(t *testing.T) {
	raw := []byte(`{"validators": {"checks": {"timeoutSeconds": 0}}}`)

	rep := Validate(raw)
	if rep.Valid {
		t.Fatal("expected invalid report for out-of-range number")
	}
	if len(rep.InvalidPaths) != 1 || rep.InvalidPaths[0] != "validators.checks.timeoutSeconds" {
		t.Errorf("unexpected invalid paths: %v", rep.InvalidPaths)
	}
}

func TestValidateUnknownTopLevelKeyWarnsOnly(t *testing.T) {
	raw := []byte(`{"annoyances": {"beep": true}}`)

	rep := Validate(raw)
	if !rep.Valid {
		t.Fatalf("unknown keys must not be errors: %v", rep.Errors)
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "annoyances") {
		t.Errorf("expected one unknown-key warning, got %v", rep.Warnings)
	}
}

func TestValidateRegexCompileFailure(t *testing.T) {
	raw := []byte(`{"guards": {"secrets": {"patterns": ["(unclosed"]}}}`)

	rep := Validate(raw)
	if rep.Valid {
		t.Fatal("expected invalid report for non-compiling pattern")
	}
	if len(rep.InvalidPaths) != 1 || rep.InvalidPaths[0] != "guards.secrets.patterns" {
		t.Errorf("unexpected invalid paths: %v", rep.InvalidPaths)
	}
}

func TestValidateUnsafeRegexWarnsOnly(t *testing.T) {
	raw := []byte(`{"guards": {"secrets": {"patterns": ["(a+)+"]}}}`)

	rep := Validate(raw)
	if !rep.Valid {
		t.Fatalf("ReDoS flags must be warnings, got errors: %v", rep.Errors)
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "catastrophic backtracking") {
		t.Errorf("expected one safety warning, got %v", rep.Warnings)
	}
}

func TestValidateListWithNonStringElement(t *testing.T) {
	raw := []byte(`{"guards": {"protectedBranches": {"branches": ["main", 7]}}}`)

	rep := Validate(raw)
	if rep.Valid {
		t.Fatal("expected invalid report for mixed-type list")
	}
	if len(rep.InvalidPaths) != 1 || rep.InvalidPaths[0] != "guards.protectedBranches.branches" {
		t.Errorf("unexpected invalid paths: %v", rep.InvalidPaths)
	}
}

func TestValidateExtendsIsKnown(t *testing.T) {
	rep := Validate([]byte(`{"extends": "strict"}`))
	if len(rep.Warnings) != 0 {
		t.Errorf("extends must not warn: %v", rep.Warnings)
	}
}
