package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
	"github.com/klauern/hookline/internal/core"
)

var securityMeta = core.FeatureMeta{
	Name:       "security",
	Events:     []core.EventType{core.PreToolUseEvent},
	Category:   CategoryGuard,
	ConfigPath: "guards.dangerousCommands",
	Priority:   10,
}

// newSecurityModule builds the dangerous-command guard. Configured
// patterns are matched case-insensitively through the shared regex
// cache; a handful of structural checks cover what patterns alone miss.
func newSecurityModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: securityMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(_ context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if in.ToolName() != constants.ToolBash {
					return nil, nil
				}
				command := in.Get("tool_input.command").String()
				if command == "" {
					return nil, nil
				}

				gc := cfg.Guards.DangerousCommands
				for _, allow := range gc.AllowList {
					if re := ec.Regex.Get(allow, ""); re != nil && re.MatchString(command) {
						return nil, nil
					}
				}
				for _, pattern := range gc.Patterns {
					if re := ec.Regex.Get(pattern, "i"); re != nil && re.MatchString(command) {
						return core.GuardResult{
							Action:  core.ActionBlock,
							Message: fmt.Sprintf("Dangerous command blocked: matches pattern %q", pattern),
						}.ToHandlerResult(), nil
					}
				}
				if blocked, reason := detectDangerousRm(command); blocked {
					return core.GuardResult{Action: core.ActionBlock, Message: reason}.ToHandlerResult(), nil
				}
				if blocked, reason := detectExfiltration(command); blocked {
					return core.GuardResult{Action: core.ActionBlock, Message: reason}.ToHandlerResult(), nil
				}
				return nil, nil
			}
		},
	}
}

// detectDangerousRm flags recursive-force deletes aimed at roots that
// cannot be expressed robustly as one regex (flag order varies).
func detectDangerousRm(command string) (bool, string) {
	tokens := strings.Fields(command)
	if len(tokens) == 0 || tokens[0] != "rm" {
		return false, ""
	}
	recursive, force := false, false
	var targets []string
	for _, tok := range tokens[1:] {
		if strings.HasPrefix(tok, "-") && !strings.HasPrefix(tok, "--") {
			if strings.ContainsAny(tok, "rR") {
				recursive = true
			}
			if strings.Contains(tok, "f") {
				force = true
			}
			continue
		}
		switch tok {
		case "--recursive":
			recursive = true
		case "--force":
			force = true
		default:
			targets = append(targets, tok)
		}
	}
	if !recursive || !force {
		return false, ""
	}
	for _, target := range targets {
		if isCriticalPath(target) {
			return true, fmt.Sprintf("Blocked recursive force delete of %q", target)
		}
	}
	return false, ""
}

func isCriticalPath(p string) bool {
	switch p {
	case "/", "/*", "~", "~/", "$HOME", "${HOME}", ".", "..":
		return true
	}
	for _, root := range []string{"/etc", "/usr", "/var", "/bin", "/boot", "/home"} {
		if p == root || p == root+"/" {
			return true
		}
	}
	return false
}

// detectExfiltration flags piping local secret material to the network.
func detectExfiltration(command string) (bool, string) {
	lower := strings.ToLower(command)
	hasNetwork := strings.Contains(lower, "curl") || strings.Contains(lower, "wget") || strings.Contains(lower, "nc ")
	if !hasNetwork {
		return false, ""
	}
	for _, sensitive := range []string{".ssh/", "id_rsa", ".aws/credentials", ".env", "/etc/passwd", "/etc/shadow"} {
		if strings.Contains(lower, sensitive) {
			return true, fmt.Sprintf("Blocked potential exfiltration of %q", sensitive)
		}
	}
	return false, ""
}
