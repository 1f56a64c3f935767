// Package platform normalizes host input into the engine's canonical
// event shape and renders pipeline results back into each host's wire
// format.
package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/klauern/hookline/internal/core"
)

// Stdin bounds. Exceeding either aborts before any handler runs.
const (
	MaxInputBytes = 1 << 20
	InputTimeout  = 5 * time.Second

	maxSessionIDLen = 128
)

// InputError marks a failure to obtain a usable event payload. It is
// raised before the pipeline starts and is always fatal to the
// invocation.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "input error: " + e.Reason
}

// camelFields maps the alternate host's camelCase field names to their
// canonical snake_case counterparts.
var camelFields = map[string]string{
	"sessionId":      "session_id",
	"transcriptPath": "transcript_path",
	"hookEventName":  "hook_event_name",
	"toolName":       "tool_name",
	"toolInput":      "tool_input",
	"toolResponse":   "tool_response",
	"toolUseId":      "tool_use_id",
	"stopHookActive": "stop_hook_active",
}

// ReadStdin reads one complete JSON object from standard input, bounded
// by a wall-clock timeout and a maximum payload size, and normalizes it.
func ReadStdin() (*core.Input, error) {
	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		return nil, &InputError{Reason: "no input piped to stdin"}
	}

	data, err := readBounded(os.Stdin, InputTimeout)
	if err != nil {
		return nil, err
	}
	return Normalize(data)
}

// readBounded reads r fully, failing when the payload exceeds
// MaxInputBytes or the timeout elapses first.
func readBounded(r io.Reader, timeout time.Duration) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
		ch <- readResult{data: data, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, &InputError{Reason: "reading stdin: " + res.err.Error()}
		}
		if len(res.data) > MaxInputBytes {
			return nil, &InputError{Reason: fmt.Sprintf("input exceeds %d bytes", MaxInputBytes)}
		}
		return res.data, nil
	case <-time.After(timeout):
		return nil, &InputError{Reason: "timed out waiting for input"}
	}
}

// Normalize detects the host format of one raw JSON payload and rewrites
// it into the canonical snake_case shape. Host-only fields (working
// directory, event-name tag, anything unrecognized) pass through
// unchanged.
func Normalize(data []byte) (*core.Input, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &InputError{Reason: "empty input"}
	}
	if !gjson.ValidBytes(data) {
		return nil, &InputError{Reason: "input is not valid JSON"}
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &InputError{Reason: "input is not a JSON object"}
	}

	format := core.FormatCanonical
	if _, hasCamel := fields["sessionId"]; hasCamel {
		if _, hasSnake := fields["session_id"]; !hasSnake {
			format = core.FormatEnvelope
			for camel, snake := range camelFields {
				if v, ok := fields[camel]; ok {
					fields[snake] = v
					delete(fields, camel)
				}
			}
		}
	}

	sessionID := ""
	if raw, ok := fields["session_id"].(string); ok {
		sessionID = SanitizeSessionID(raw)
		fields["session_id"] = sessionID
	}

	in := &core.Input{
		Format:    format,
		SessionID: sessionID,
		Fields:    fields,
	}
	if name, ok := fields["hook_event_name"].(string); ok {
		if event, known := core.ResolveEventAlias(name); known {
			in.Event = event
		}
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, &InputError{Reason: "re-encoding normalized input: " + err.Error()}
	}
	in.Raw = raw
	return in, nil
}

// SanitizeSessionID restricts id to [A-Za-z0-9_-] and 128 characters so
// later filesystem use of the identifier cannot traverse paths.
func SanitizeSessionID(id string) string {
	if len(id) > maxSessionIDLen {
		id = id[:maxSessionIDLen]
	}
	b := []byte(id)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
