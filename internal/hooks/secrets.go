package hooks

import (
	"context"
	"fmt"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
)

var secretsMeta = core.FeatureMeta{
	Name:       "secrets",
	Events:     []core.EventType{core.PreToolUseEvent},
	Category:   CategoryGuard,
	ConfigPath: "guards.secrets",
	Priority:   40,
}

// newSecretsModule builds the guard that scans raw tool input for
// credential material before the tool runs. The whole tool_input
// subtree is scanned so secrets embedded in commands, file contents,
// and edit payloads are all covered.
func newSecretsModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: secretsMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(_ context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				payload := in.Get("tool_input").Raw
				if payload == "" {
					return nil, nil
				}
				for i, pattern := range cfg.Guards.Secrets.Patterns {
					re := ec.Regex.Get(pattern, "")
					if re == nil {
						continue
					}
					if re.MatchString(payload) {
						// The matched text itself stays out of the
						// message so the secret is not echoed back.
						return core.GuardResult{
							Action:  core.ActionBlock,
							Message: fmt.Sprintf("Potential secret detected in tool input (pattern #%d)", i+1),
						}.ToHandlerResult(), nil
					}
				}
				return nil, nil
			}
		},
	}
}
