package hooks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
	"github.com/klauern/hookline/internal/core"
)

var protectedBranchesMeta = core.FeatureMeta{
	Name:       "protected-branches",
	Events:     []core.EventType{core.PreToolUseEvent},
	Category:   CategoryGuard,
	ConfigPath: "guards.protectedBranches",
	Priority:   30,
}

// newProtectedBranchesModule builds the guard that blocks force pushes
// while a protected branch is checked out.
func newProtectedBranchesModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: protectedBranchesMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(ctx context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if in.ToolName() != constants.ToolBash {
					return nil, nil
				}
				command := in.Get("tool_input.command").String()
				if !isForcePush(command) {
					return nil, nil
				}

				branch := currentBranch(ctx, ec)
				if branch == "" {
					return nil, nil
				}
				if slices.Contains(cfg.Guards.ProtectedBranches.Branches, branch) {
					return core.GuardResult{
						Action:  core.ActionBlock,
						Message: fmt.Sprintf("Force push blocked on protected branch %q", branch),
					}.ToHandlerResult(), nil
				}
				return nil, nil
			}
		},
	}
}

func isForcePush(command string) bool {
	tokens := strings.Fields(command)
	push := false
	for i, tok := range tokens {
		if tok == "git" && i+1 < len(tokens) && tokens[i+1] == "push" {
			push = true
		}
	}
	if !push {
		return false
	}
	for _, tok := range tokens {
		if tok == "--force" || tok == "-f" || strings.HasPrefix(tok, "--force-with-lease") {
			return true
		}
	}
	return false
}

// currentBranch asks git for the checked-out branch; empty on any
// failure so the guard fails open outside a repository.
func currentBranch(ctx context.Context, ec *core.EngineContext) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	out, err := ec.Exec.Run(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
