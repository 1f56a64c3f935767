package core

// EventType represents a hook lifecycle event
type EventType string

// All supported hook events
const (
	PreToolUseEvent       EventType = "PreToolUse"
	PostToolUseEvent      EventType = "PostToolUse"
	UserPromptSubmitEvent EventType = "UserPromptSubmit"
	NotificationEvent     EventType = "Notification"
	StopEvent             EventType = "Stop"
	SubagentStopEvent     EventType = "SubagentStop"
	PreCompactEvent       EventType = "PreCompact"
	SessionStartEvent     EventType = "SessionStart"
	SessionEndEvent       EventType = "SessionEnd"
)

// HookEvent describes one lifecycle event with metadata
type HookEvent struct {
	Type        EventType
	Name        string
	Description string
	// Aliases are alternate spellings accepted from hosts and the CLI
	Aliases []string
}

// AllHookEvents returns every supported hook event
func AllHookEvents() []HookEvent {
	return []HookEvent{
		{
			Type:        PreToolUseEvent,
			Name:        string(PreToolUseEvent),
			Description: "Runs after tool parameters are created and before the tool call executes",
			Aliases:     []string{"preToolUse", "pre-tool-use"},
		},
		{
			Type:        PostToolUseEvent,
			Name:        string(PostToolUseEvent),
			Description: "Runs immediately after a tool completes",
			Aliases:     []string{"postToolUse", "post-tool-use"},
		},
		{
			Type:        UserPromptSubmitEvent,
			Name:        string(UserPromptSubmitEvent),
			Description: "Runs when the user submits a prompt, before it is processed",
			Aliases:     []string{"userPromptSubmit", "user-prompt-submit"},
		},
		{
			Type:        NotificationEvent,
			Name:        string(NotificationEvent),
			Description: "Runs when the host raises a notification",
			Aliases:     []string{"notification"},
		},
		{
			Type:        StopEvent,
			Name:        string(StopEvent),
			Description: "Runs when the main agent has finished responding",
			Aliases:     []string{"stop"},
		},
		{
			Type:        SubagentStopEvent,
			Name:        string(SubagentStopEvent),
			Description: "Runs when a subagent has finished responding",
			Aliases:     []string{"subagentStop", "subagent-stop"},
		},
		{
			Type:        PreCompactEvent,
			Name:        string(PreCompactEvent),
			Description: "Runs before the host compacts conversation history",
			Aliases:     []string{"preCompact", "pre-compact"},
		},
		{
			Type:        SessionStartEvent,
			Name:        string(SessionStartEvent),
			Description: "Runs when a session starts or resumes",
			Aliases:     []string{"sessionStart", "session-start"},
		},
		{
			Type:        SessionEndEvent,
			Name:        string(SessionEndEvent),
			Description: "Runs when a session ends",
			Aliases:     []string{"sessionEnd", "session-end"},
		},
	}
}

// ValidEventTypes returns the canonical names of all events
func ValidEventTypes() []string {
	events := AllHookEvents()
	names := make([]string, len(events))
	for i, event := range events {
		names[i] = event.Name
	}
	return names
}

// ResolveEventAlias converts an event name or alias to its canonical
// EventType. The second return is false when the name is not recognized.
func ResolveEventAlias(name string) (EventType, bool) {
	for _, event := range AllHookEvents() {
		if event.Name == name {
			return event.Type, true
		}
		for _, alias := range event.Aliases {
			if alias == name {
				return event.Type, true
			}
		}
	}
	return "", false
}
