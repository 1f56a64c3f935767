package core

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/klauern/hookline/internal/config"
)

func handlerOf(name string, h Handler) OrderedHandler {
	return OrderedHandler{Meta: FeatureMeta{Name: name}, Handler: h}
}

func fixedResult(hr *HandlerResult) Handler {
	return func(context.Context, *Input, *config.Config) (*HandlerResult, error) {
		return hr, nil
	}
}

func runPipeline(t *testing.T, handlers ...OrderedHandler) *Result {
	t.Helper()
	cfg := config.Default()
	p := &Pipeline{Log: zerolog.Nop()}
	in := &Input{Event: PreToolUseEvent, Format: FormatCanonical, Raw: []byte("{}")}
	return p.Run(context.Background(), handlers, in, &cfg)
}

func TestPipelineShortCircuitOnBlock(t *testing.T) {
	thirdRan := false
	res := runPipeline(t,
		handlerOf("first", fixedResult(&HandlerResult{ExitCode: ExitProceed})),
		handlerOf("second", fixedResult(&HandlerResult{ExitCode: ExitBlocked, Stderr: "x"})),
		handlerOf("third", func(context.Context, *Input, *config.Config) (*HandlerResult, error) {
			thirdRan = true
			return nil, nil
		}),
	)

	if res.ExitCode != ExitBlocked {
		t.Errorf("exit code = %d, want %d", res.ExitCode, ExitBlocked)
	}
	if thirdRan {
		t.Error("handler after the block still ran")
	}
	if res.Stderr != "x" {
		t.Errorf("stderr = %q, want %q", res.Stderr, "x")
	}
}

func TestPipelineNilResultHasNoEffect(t *testing.T) {
	res := runPipeline(t,
		handlerOf("silent", fixedResult(nil)),
		handlerOf("speaks", fixedResult(&HandlerResult{Stdout: "hello"})),
	)

	if res.ExitCode != ExitProceed {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if res.Stdout != "hello" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "hello")
	}
}

func TestPipelineHandlerErrorStops(t *testing.T) {
	secondRan := false
	res := runPipeline(t,
		handlerOf("fails", func(context.Context, *Input, *config.Config) (*HandlerResult, error) {
			return nil, errors.New("boom")
		}),
		handlerOf("second", func(context.Context, *Input, *config.Config) (*HandlerResult, error) {
			secondRan = true
			return nil, nil
		}),
	)

	if res.ExitCode != ExitError {
		t.Errorf("exit code = %d, want %d", res.ExitCode, ExitError)
	}
	if res.Stderr != "boom" {
		t.Errorf("stderr = %q, want the error message", res.Stderr)
	}
	if secondRan {
		t.Error("pipeline continued past a failed handler")
	}
}

func TestPipelinePanicIsIsolated(t *testing.T) {
	res := runPipeline(t,
		handlerOf("panics", func(context.Context, *Input, *config.Config) (*HandlerResult, error) {
			panic("kaboom")
		}),
	)

	if res.ExitCode != ExitError {
		t.Errorf("exit code = %d, want %d", res.ExitCode, ExitError)
	}
	if res.Stderr != "kaboom" {
		t.Errorf("stderr = %q, want panic message", res.Stderr)
	}
}

func TestPipelineContextMerge(t *testing.T) {
	res := runPipeline(t,
		handlerOf("a", fixedResult(&HandlerResult{Stdout: `{"additionalContext":"A"}`})),
		handlerOf("b", fixedResult(&HandlerResult{Stdout: `{"additionalContext":"B"}`})),
	)

	got := gjson.Get(res.Stdout, "additionalContext").String()
	want := "A" + ContextSeparator + "B"
	if got != want {
		t.Errorf("additionalContext = %q, want %q", got, want)
	}
}

func TestPipelineSingleContextPreservesOtherFields(t *testing.T) {
	res := runPipeline(t,
		handlerOf("ctx", fixedResult(&HandlerResult{Stdout: `{"additionalContext":"info"}`})),
		handlerOf("decider", fixedResult(&HandlerResult{Stdout: `{"decision":"allow","note":"fine"}`})),
	)

	if got := gjson.Get(res.Stdout, "decision").String(); got != "allow" {
		t.Errorf("decision field dropped, stdout = %q", res.Stdout)
	}
	if got := gjson.Get(res.Stdout, "additionalContext").String(); got != "info" {
		t.Errorf("additionalContext = %q, want %q", got, "info")
	}
}

func TestPipelineContextWithNonJSONLastStdout(t *testing.T) {
	res := runPipeline(t,
		handlerOf("ctx", fixedResult(&HandlerResult{Stdout: `{"additionalContext":"A"}`})),
		handlerOf("plain", fixedResult(&HandlerResult{Stdout: "just text"})),
	)

	// The non-JSON stdout cannot carry fields; the context is wrapped
	// in a fresh object.
	if got := gjson.Get(res.Stdout, "additionalContext").String(); got != "A" {
		t.Errorf("additionalContext = %q, want %q", got, "A")
	}
}

func TestPipelineNoContextPassesStdoutVerbatim(t *testing.T) {
	res := runPipeline(t,
		handlerOf("plain", fixedResult(&HandlerResult{Stdout: "raw message"})),
	)
	if res.Stdout != "raw message" {
		t.Errorf("stdout = %q, want verbatim passthrough", res.Stdout)
	}
}

func TestPipelineStderrConcatenates(t *testing.T) {
	res := runPipeline(t,
		handlerOf("warn1", fixedResult(&HandlerResult{Stderr: "one;"})),
		handlerOf("warn2", fixedResult(&HandlerResult{Stderr: "two"})),
	)
	if res.Stderr != "one;two" {
		t.Errorf("stderr = %q, want concatenation", res.Stderr)
	}
}

func TestGuardResultTranslation(t *testing.T) {
	tests := []struct {
		name  string
		guard GuardResult
		want  *HandlerResult
		isNil bool
	}{
		{"block", GuardResult{Action: ActionBlock, Message: "no"}, &HandlerResult{ExitCode: ExitBlocked, Stderr: "no"}, false},
		{"warn", GuardResult{Action: ActionWarn, Message: "careful"}, &HandlerResult{ExitCode: ExitProceed, Stderr: "careful"}, false},
		{"proceed silent", GuardResult{Action: ActionProceed}, nil, true},
		{"proceed message", GuardResult{Action: ActionProceed, Message: "ok"}, &HandlerResult{Stdout: "ok"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.guard.ToHandlerResult()
			if tt.isNil {
				if got != nil {
					t.Fatalf("expected nil result, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
