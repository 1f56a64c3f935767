package constants

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName        = "Hookline"
	BinaryName     = "hookline"
	ProjectTagline = "Hook, line, and sinker"

	// Module and repository
	ModulePath    = "github.com/klauern/hookline"
	RepositoryURL = "https://github.com/klauern/hookline"

	// Configuration file consumed by the config resolver
	ConfigFileName = "claude-hooks.config.json"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"

	// Default directory for audit logs and session counters
	DefaultLogDir = ClaudeDir + "/" + HooksSubDir
)

// Tool names as they appear in hook payloads
const (
	ToolBash         = "Bash"
	ToolEdit         = "Edit"
	ToolMultiEdit    = "MultiEdit"
	ToolWrite        = "Write"
	ToolRead         = "Read"
	ToolNotebookEdit = "NotebookEdit"
)
