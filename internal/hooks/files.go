package hooks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
	"github.com/klauern/hookline/internal/core"
)

var protectedFilesMeta = core.FeatureMeta{
	Name:       "protected-files",
	Events:     []core.EventType{core.PreToolUseEvent},
	Category:   CategoryGuard,
	ConfigPath: "guards.protectedFiles",
	Priority:   20,
}

// writeTools are the tools that modify a file named by tool_input.
var writeTools = map[string]bool{
	constants.ToolEdit:         true,
	constants.ToolMultiEdit:    true,
	constants.ToolWrite:        true,
	constants.ToolNotebookEdit: true,
}

func newProtectedFilesModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: protectedFilesMeta,
		New: func(_ *core.EngineContext, _ core.EventType) core.Handler {
			return func(_ context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if !writeTools[in.ToolName()] {
					return nil, nil
				}
				path := in.Get("tool_input.file_path").String()
				if path == "" {
					path = in.Get("tool_input.notebook_path").String()
				}
				if path == "" {
					return nil, nil
				}
				if pattern, ok := matchProtected(path, cfg.Guards.ProtectedFiles.Patterns); ok {
					return core.GuardResult{
						Action:  core.ActionBlock,
						Message: fmt.Sprintf("Write to protected file %q blocked (pattern %q)", path, pattern),
					}.ToHandlerResult(), nil
				}
				return nil, nil
			}
		},
	}
}

// matchProtected globs each pattern against the full path and its base
// name, so ".env" also protects "sub/dir/.env".
func matchProtected(path string, patterns []string) (string, bool) {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return pattern, true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}
