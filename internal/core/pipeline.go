package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/klauern/hookline/internal/config"
)

// ContextSeparator joins multiple additionalContext contributions.
const ContextSeparator = "\n\n---\n\n"

// Result is the aggregate outcome of one pipeline run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Contexts holds the collected additionalContext strings in
	// handler order, before joining.
	Contexts []string
}

// Pipeline executes an ordered handler list against one event's input
// and the immutable config snapshot.
type Pipeline struct {
	Log zerolog.Logger
}

// Run invokes handlers one at a time, in order, short-circuiting on the
// first blocking or failing result, and composes their partial outputs.
func (p *Pipeline) Run(ctx context.Context, handlers []OrderedHandler, in *Input, cfg *config.Config) *Result {
	res := &Result{ExitCode: ExitProceed}
	var lastStdout string
	var stderr strings.Builder

	for _, h := range handlers {
		hr := p.invoke(ctx, h, in, cfg)
		if hr == nil {
			continue
		}
		if hr.Stderr != "" {
			stderr.WriteString(hr.Stderr)
		}
		if hr.ExitCode != ExitProceed {
			res.ExitCode = hr.ExitCode
			if hr.Stdout != "" {
				lastStdout = hr.Stdout
			}
			break
		}
		if hr.Stdout != "" {
			if parsed := gjson.Parse(hr.Stdout); gjson.Valid(hr.Stdout) && parsed.IsObject() {
				if ac := parsed.Get("additionalContext"); ac.Exists() && ac.Type == gjson.String {
					res.Contexts = append(res.Contexts, ac.String())
				}
			}
			// The most recent stdout wins so a decision-bearing
			// handler's non-context fields survive into the output.
			lastStdout = hr.Stdout
		}
	}

	res.Stderr = stderr.String()
	res.Stdout = composeStdout(lastStdout, res.Contexts)
	return res
}

// invoke runs one handler, translating an error return or a panic into
// an internal-error result so a single feature's defect cannot corrupt
// pipeline control flow.
func (p *Pipeline) invoke(ctx context.Context, h OrderedHandler, in *Input, cfg *config.Config) (hr *HandlerResult) {
	defer func() {
		if r := recover(); r != nil {
			p.Log.Error().Str("feature", h.Meta.Name).Any("panic", r).Msg("handler panicked")
			hr = &HandlerResult{ExitCode: ExitError, Stderr: fmt.Sprint(r)}
		}
	}()

	res, err := h.Handler(ctx, in, cfg)
	if err != nil {
		p.Log.Error().Str("feature", h.Meta.Name).Err(err).Msg("handler failed")
		return &HandlerResult{ExitCode: ExitError, Stderr: err.Error()}
	}
	return res
}

// composeStdout renders the final stdout. With no collected context the
// last raw stdout passes through unchanged. Otherwise the joined context
// is set onto the last stdout's JSON object (or an empty object if it
// was not JSON), preserving every other field.
func composeStdout(last string, contexts []string) string {
	if len(contexts) == 0 {
		return last
	}
	joined := strings.Join(contexts, ContextSeparator)
	base := "{}"
	if parsed := gjson.Parse(last); parsed.IsObject() && gjson.Valid(last) {
		base = last
	}
	out, err := sjson.Set(base, "additionalContext", joined)
	if err != nil {
		return last
	}
	return out
}
