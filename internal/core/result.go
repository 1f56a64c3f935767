package core

// Pipeline exit codes surfaced to the host. Fixed, never remapped.
const (
	ExitProceed = 0
	ExitError   = 1
	ExitBlocked = 2
)

// HandlerResult is the outcome of a single handler. A nil *HandlerResult
// means "no effect, continue to the next handler".
type HandlerResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// GuardAction is the decision a guard or validator reaches.
type GuardAction string

// Guard decisions
const (
	ActionProceed GuardAction = "proceed"
	ActionBlock   GuardAction = "block"
	ActionWarn    GuardAction = "warn"
)

// GuardResult is the decision shape produced by individual guards before
// translation into pipeline terms.
type GuardResult struct {
	Action  GuardAction
	Message string
	Details map[string]any
}

// ToHandlerResult translates a guard decision into a HandlerResult.
// Blocks stop the pipeline; warnings surface on stderr but continue;
// a plain proceed with no message has no effect at all.
func (g GuardResult) ToHandlerResult() *HandlerResult {
	switch g.Action {
	case ActionBlock:
		return &HandlerResult{ExitCode: ExitBlocked, Stderr: g.Message}
	case ActionWarn:
		return &HandlerResult{ExitCode: ExitProceed, Stderr: g.Message}
	default:
		if g.Message == "" {
			return nil
		}
		return &HandlerResult{ExitCode: ExitProceed, Stdout: g.Message}
	}
}
