package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
	"github.com/klauern/hookline/internal/regexutil"
)

// fakeFileSystem is a map-backed FileSystem for tests.
type fakeFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: map[string][]byte{}, dirs: map[string]bool{}}
}

func (f *fakeFileSystem) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (f *fakeFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.files[name] = append([]byte(nil), data...)
	return nil
}

func (f *fakeFileSystem) MkdirAll(path string, _ os.FileMode) error {
	f.dirs[path] = true
	return nil
}

func (f *fakeFileSystem) Stat(string) (os.FileInfo, error) {
	return nil, fs.ErrNotExist
}

// fakeExecutor returns a scripted response per command name.
type fakeExecutor struct {
	output map[string][]byte
	fail   map[string]bool
	calls  []string
}

func (f *fakeExecutor) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	if f.fail[name] {
		return f.output[name], errors.New("exit status 1")
	}
	return f.output[name], nil
}

func testEngineContext(t *testing.T) (*core.EngineContext, *fakeFileSystem, *fakeExecutor) {
	t.Helper()
	fsys := newFakeFileSystem()
	exec := &fakeExecutor{output: map[string][]byte{}, fail: map[string]bool{}}
	ec := &core.EngineContext{
		FileSystem: fsys,
		Exec:       exec,
		Regex:      regexutil.NewCache(),
		Log:        zerolog.Nop(),
		RunID:      "run-test",
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return ec, fsys, exec
}

// makeInput builds a normalized Input from event, session id, and a
// payload fragment merged into the canonical object.
func makeInput(t *testing.T, event core.EventType, sessionID string, extra map[string]any) *core.Input {
	t.Helper()
	payload := map[string]any{
		"session_id":      sessionID,
		"hook_event_name": string(event),
	}
	for k, v := range extra {
		payload[k] = v
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &core.Input{
		Event:     event,
		Format:    core.FormatCanonical,
		SessionID: sessionID,
		Fields:    payload,
		Raw:       raw,
	}
}

func bashInput(t *testing.T, command string) *core.Input {
	t.Helper()
	return makeInput(t, core.PreToolUseEvent, "sess1", map[string]any{
		"tool_name":  "Bash",
		"tool_input": map[string]any{"command": command},
	})
}

func writeInput(t *testing.T, tool, path string) *core.Input {
	t.Helper()
	return makeInput(t, core.PreToolUseEvent, "sess1", map[string]any{
		"tool_name":  tool,
		"tool_input": map[string]any{"file_path": path},
	})
}

func runHandler(t *testing.T, mod *core.FeatureModule, ec *core.EngineContext, in *core.Input, cfg *config.Config) *core.HandlerResult {
	t.Helper()
	handler := mod.New(ec, in.Event)
	res, err := handler(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func defaultConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}
