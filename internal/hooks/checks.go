package hooks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
)

var checksMeta = core.FeatureMeta{
	Name:       "checks",
	Events:     []core.EventType{core.PostToolUseEvent},
	Category:   CategoryValidator,
	ConfigPath: "validators.checks",
	Priority:   100,
}

// newChecksModule builds the post-action validator that runs the
// configured commands (lint, typecheck, tests) after a file-modifying
// tool completes and blocks when any of them fails. Each command gets
// its own timeout; the pipeline itself never cancels a handler.
func newChecksModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: checksMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(ctx context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if !writeTools[in.ToolName()] {
					return nil, nil
				}
				vc := cfg.Validators.Checks
				if len(vc.Commands) == 0 {
					return nil, nil
				}
				timeout := time.Duration(vc.TimeoutSeconds) * time.Second
				if timeout <= 0 {
					timeout = time.Minute
				}

				for _, command := range vc.Commands {
					out, err := runShell(ctx, ec, command, timeout)
					if err != nil {
						msg := fmt.Sprintf("Check failed: %s\n%s", command, strings.TrimSpace(out))
						return core.GuardResult{Action: core.ActionBlock, Message: msg}.ToHandlerResult(), nil
					}
				}
				return nil, nil
			}
		},
	}
}

func runShell(ctx context.Context, ec *core.EngineContext, command string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := ec.Exec.Run(ctx, "sh", "-c", command)
	return string(out), err
}
