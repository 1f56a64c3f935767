package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
)

var webhookMeta = core.FeatureMeta{
	Name:       "webhook",
	Events:     []core.EventType{core.StopEvent, core.NotificationEvent},
	Category:   CategoryTracker,
	ConfigPath: "trackers.webhook",
	Priority:   220,
}

// webhookPayload is the JSON body POSTed to the configured endpoint.
type webhookPayload struct {
	Event     string `json:"event"`
	RunID     string `json:"run_id"`
	SessionID string `json:"session_id,omitempty"`
	Time      string `json:"time"`
	Message   string `json:"message,omitempty"`
}

// newWebhookModule builds the tracker that notifies an external
// endpoint when a run stops or a notification fires. Delivery is best
// effort; failures are logged and never affect the pipeline outcome.
func newWebhookModule() *core.FeatureModule {
	return &core.FeatureModule{
		Meta: webhookMeta,
		New: func(ec *core.EngineContext, _ core.EventType) core.Handler {
			return func(ctx context.Context, in *core.Input, cfg *config.Config) (*core.HandlerResult, error) {
				wc := cfg.Trackers.Webhook
				if wc.URL == "" {
					return nil, nil
				}
				payload := webhookPayload{
					Event:     string(in.Event),
					RunID:     ec.RunID,
					SessionID: in.SessionID,
					Time:      ec.Now().UTC().Format(time.RFC3339),
					Message:   in.Get("message").String(),
				}
				body, err := json.Marshal(payload)
				if err != nil {
					return nil, nil
				}

				timeout := time.Duration(wc.TimeoutSeconds) * time.Second
				if timeout <= 0 {
					timeout = 5 * time.Second
				}
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				req, err := http.NewRequestWithContext(ctx, http.MethodPost, wc.URL, bytes.NewReader(body))
				if err != nil {
					ec.Log.Warn().Err(err).Msg("webhook request build failed")
					return nil, nil
				}
				req.Header.Set("Content-Type", "application/json")
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					ec.Log.Warn().Err(err).Str("url", wc.URL).Msg("webhook delivery failed")
					return nil, nil
				}
				defer resp.Body.Close()
				if resp.StatusCode >= 300 {
					ec.Log.Warn().Int("status", resp.StatusCode).Str("url", wc.URL).Msg("webhook endpoint rejected payload")
				}
				return nil, nil
			}
		},
	}
}
