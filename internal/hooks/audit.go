package hooks

import (
	"context"
	"encoding/json"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
)

var auditMeta = core.FeatureMeta{
	Name:       "audit",
	Events:     []core.EventType{core.PreToolUseEvent, core.PostToolUseEvent, core.UserPromptSubmitEvent, core.NotificationEvent, core.StopEvent, core.SubagentStopEvent, core.PreCompactEvent, core.SessionStartEvent, core.SessionEndEvent},
	Category:   CategoryTracker,
	ConfigPath: "trackers.audit",
	Priority:   200,
}

// auditEntry is one JSONL line in the audit log.
type auditEntry struct {
	Time      string `json:"time"`
	RunID     string `json:"run_id"`
	SessionID string `json:"session_id,omitempty"`
	Event     string `json:"event"`
	ToolName  string `json:"tool_name,omitempty"`
	Format    string `json:"format"`
}

// newAuditModule builds the tracker that appends one line per
// invocation to a rotated audit log. Logging is best effort: a write
// failure is logged and the pipeline proceeds.
func newAuditModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: auditMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(_ context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				if !cfg.Logging.On() {
					return nil, nil
				}
				entry := auditEntry{
					Time:      ec.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
					RunID:     ec.RunID,
					SessionID: in.SessionID,
					Event:     string(in.Event),
					ToolName:  in.ToolName(),
					Format:    string(in.Format),
				}
				line, err := json.Marshal(entry)
				if err != nil {
					return nil, nil
				}

				w := config.NewRotatingWriter(config.AuditLogPath(cfg.Logging, "audit"), cfg.Logging.Rotation)
				defer w.Close()
				if _, err := w.Write(append(line, '\n')); err != nil {
					ec.Log.Warn().Err(err).Msg("audit log write failed")
				}
				return nil, nil
			}
		},
	}
}
