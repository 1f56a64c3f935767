package platform

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/klauern/hookline/internal/core"
)

// BlockedFallbackReason is used when a blocked pipeline produced no
// message of its own.
const BlockedFallbackReason = "Operation blocked by hook"

// Envelope is the structured response expected by the envelope-format
// host.
type Envelope struct {
	Continue           bool        `json:"continue"`
	StopReason         string      `json:"stopReason,omitempty"`
	Decision           string      `json:"decision,omitempty"`
	Reason             string      `json:"reason,omitempty"`
	HookSpecificOutput *HookOutput `json:"hookSpecificOutput,omitempty"`
}

// HookOutput is the per-event payload inside an Envelope.
type HookOutput struct {
	HookEventName            string          `json:"hookEventName"`
	PermissionDecision       string          `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string          `json:"permissionDecisionReason,omitempty"`
	UpdatedInput             json.RawMessage `json:"updatedInput,omitempty"`
	AdditionalContext        string          `json:"additionalContext,omitempty"`
	Decision                 string          `json:"decision,omitempty"`
	Reason                   string          `json:"reason,omitempty"`
}

// Render produces the stdout bytes for the host, given the pipeline
// result and the format detected during normalization. For canonical
// hosts the merged stdout passes through verbatim; envelope hosts get
// exactly one JSON envelope.
func Render(in *core.Input, res *core.Result) string {
	switch in.Format {
	case core.FormatEnvelope:
		return renderEnvelope(in, res)
	default:
		return res.Stdout
	}
}

func renderEnvelope(in *core.Input, res *core.Result) string {
	parsed := gjson.Result{}
	if gjson.Valid(res.Stdout) {
		if p := gjson.Parse(res.Stdout); p.IsObject() {
			parsed = p
		}
	}

	var env Envelope
	switch in.Event {
	case core.PreToolUseEvent:
		env = preToolUseEnvelope(in, res, parsed)
	case core.PostToolUseEvent:
		env = postActionEnvelope(in, res, parsed, false)
	case core.StopEvent, core.SubagentStopEvent:
		env = postActionEnvelope(in, res, parsed, true)
	default:
		env = defaultEnvelope(in, res, parsed)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return `{"continue":true}`
	}
	return string(data)
}

// blockReason derives the user-facing reason for a blocked pipeline:
// a stdout-carried message wins, then stderr, then a fixed fallback.
func blockReason(res *core.Result, parsed gjson.Result) string {
	if msg := parsed.Get("message").String(); msg != "" {
		return msg
	}
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	return BlockedFallbackReason
}

// defaultEnvelope covers every event type without a bespoke rule.
func defaultEnvelope(in *core.Input, res *core.Result, parsed gjson.Result) Envelope {
	hso := &HookOutput{HookEventName: string(in.Event)}
	if res.ExitCode == core.ExitBlocked {
		return Envelope{
			Continue:           false,
			StopReason:         blockReason(res, parsed),
			HookSpecificOutput: hso,
		}
	}
	if ac := parsed.Get("additionalContext"); ac.Exists() {
		hso.AdditionalContext = ac.String()
	}
	return Envelope{Continue: true, HookSpecificOutput: hso}
}

// preToolUseEnvelope maps a block to a deny permission decision and
// surfaces a handler-emitted allow/deny/ask decision, propagating
// updatedInput only when the decision is not deny.
func preToolUseEnvelope(in *core.Input, res *core.Result, parsed gjson.Result) Envelope {
	hso := &HookOutput{HookEventName: string(in.Event)}

	if res.ExitCode == core.ExitBlocked {
		reason := blockReason(res, parsed)
		hso.PermissionDecision = "deny"
		hso.PermissionDecisionReason = reason
		return Envelope{Continue: false, StopReason: reason, HookSpecificOutput: hso}
	}

	switch d := parsed.Get("decision").String(); d {
	case "allow", "deny", "ask":
		hso.PermissionDecision = d
		if msg := parsed.Get("message").String(); msg != "" {
			hso.PermissionDecisionReason = msg
		}
		if d != "deny" {
			if ui := parsed.Get("updatedInput"); ui.Exists() {
				hso.UpdatedInput = json.RawMessage(ui.Raw)
			}
		}
	}
	if ac := parsed.Get("additionalContext"); ac.Exists() {
		hso.AdditionalContext = ac.String()
	}
	return Envelope{Continue: true, HookSpecificOutput: hso}
}

// postActionEnvelope maps a block to a top-level block decision with a
// reason. Termination events additionally honor a handler-emitted
// {decision: "block"} even when the pipeline exit code was 0.
func postActionEnvelope(in *core.Input, res *core.Result, parsed gjson.Result, termination bool) Envelope {
	hso := &HookOutput{HookEventName: string(in.Event)}

	if res.ExitCode == core.ExitBlocked {
		reason := blockReason(res, parsed)
		return Envelope{
			Continue:           false,
			Decision:           "block",
			Reason:             reason,
			HookSpecificOutput: hso,
		}
	}
	if termination && parsed.Get("decision").String() == "block" {
		return Envelope{
			Continue:           true,
			Decision:           "block",
			Reason:             parsed.Get("reason").String(),
			HookSpecificOutput: hso,
		}
	}
	if ac := parsed.Get("additionalContext"); ac.Exists() {
		hso.AdditionalContext = ac.String()
	}
	return Envelope{Continue: true, HookSpecificOutput: hso}
}
