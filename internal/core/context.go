package core

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/klauern/hookline/internal/regexutil"
)

// FileSystem interface for dependency injection in testing
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem using the real filesystem
type RealFileSystem struct{}

// ReadFile reads the named file
func (RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 - filesystem interface, paths controlled by caller
}

// WriteFile writes data to a file with the specified permissions
func (RealFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// MkdirAll creates a directory and any missing parents
func (RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Stat returns file information for the specified path
func (RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// CommandExecutor interface for dependency injection in testing
type CommandExecutor interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealCommandExecutor implements CommandExecutor using real system commands
type RealCommandExecutor struct{}

// Run executes a command and returns its combined output. The context
// carries any per-command timeout the caller wants applied.
// #nosec G204 - command names are feature-defined, not host input
func (RealCommandExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// EngineContext carries the process-wide collaborators handlers may
// need. The entry point constructs exactly one and threads it through
// every call; nothing here is global or mutated after construction.
type EngineContext struct {
	FileSystem FileSystem
	Exec       CommandExecutor
	Regex      *regexutil.Cache
	Log        zerolog.Logger
	RunID      string
	Now        func() time.Time
}

// NewEngineContext returns a context wired to real implementations.
func NewEngineContext(log zerolog.Logger) *EngineContext {
	return &EngineContext{
		FileSystem: RealFileSystem{},
		Exec:       RealCommandExecutor{},
		Regex:      regexutil.NewCache(),
		Log:        log,
		RunID:      uuid.NewString(),
		Now:        time.Now,
	}
}
