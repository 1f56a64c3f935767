package core

import "github.com/tidwall/gjson"

// Format identifies the wire shape of the host that invoked us, decided
// once during input normalization and matched exhaustively afterwards.
type Format string

// Host wire formats
const (
	// FormatCanonical hosts send snake_case fields and accept raw
	// stdout replies.
	FormatCanonical Format = "canonical"
	// FormatEnvelope hosts send camelCase fields and expect a JSON
	// envelope reply.
	FormatEnvelope Format = "envelope"
)

// Input is the normalized event payload handed to every handler. It is
// built once before the pipeline starts and treated as read-only.
type Input struct {
	Event     EventType
	Format    Format
	SessionID string // sanitized, safe for filesystem use
	Fields    map[string]any
	Raw       []byte // canonical snake_case re-encoding of the payload
}

// Get resolves a dot-path into the canonical payload.
func (in *Input) Get(path string) gjson.Result {
	return gjson.GetBytes(in.Raw, path)
}

// ToolName returns the payload's tool name, if any.
func (in *Input) ToolName() string {
	return in.Get("tool_name").String()
}
