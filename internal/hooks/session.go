package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
)

var sessionMeta = core.FeatureMeta{
	Name:       "session",
	Events:     []core.EventType{core.SessionStartEvent, core.StopEvent},
	Category:   CategoryTracker,
	ConfigPath: "trackers.session",
	Priority:   210,
}

// newSessionModule builds the tracker that counts sessions per session
// ID under the logging directory. On SessionStart it bumps the counter
// and surfaces the count as additional context; on Stop it only records
// that the session ended. Everything is best effort.
func newSessionModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: sessionMeta,
		New: func(ec *core.EngineContext, event core.EventType) core.Handler {
			return func(_ context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if in.SessionID == "" {
					return nil, nil
				}
				path := sessionCounterPath(cfg.Logging, in.SessionID)
				if event != core.SessionStartEvent {
					// Stop: touch the counter so its mtime records the
					// end of the session.
					if data, err := ec.FileSystem.ReadFile(path); err == nil {
						_ = ec.FileSystem.WriteFile(path, data, 0o644)
					}
					return nil, nil
				}

				count := readCounter(ec, path) + 1
				if err := ec.FileSystem.MkdirAll(filepath.Dir(path), 0o755); err == nil {
					if err := ec.FileSystem.WriteFile(path, []byte(strconv.Itoa(count)), 0o644); err != nil {
						ec.Log.Warn().Err(err).Str("path", path).Msg("session counter write failed")
					}
				}

				msg := fmt.Sprintf("Session %s has started %d time(s) on this machine.", in.SessionID, count)
				stdout, err := json.Marshal(map[string]string{"additionalContext": msg})
				if err != nil {
					return nil, nil
				}
				return &core.HandlerResult{ExitCode: core.ExitProceed, Stdout: string(stdout)}, nil
			}
		},
	}
}

func sessionCounterPath(lc config.LoggingConfig, sessionID string) string {
	return filepath.Join(lc.Dir, "sessions", sessionID+".count")
}

func readCounter(ec *core.EngineContext, path string) int {
	data, err := ec.FileSystem.ReadFile(path)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
