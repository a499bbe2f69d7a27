package trail

import "context"

// Completion is what a session tells the reporter when a quiz is passed.
type Completion struct {
	ModuleID  string
	Passed    bool
	Score     int
	Total     int
	SessionID string
}

// Reporter receives module completions. Report is fire-and-forget: the
// session never inspects the outcome, so implementations handle (and log)
// their own failures.
type Reporter interface {
	Report(ctx context.Context, c Completion)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(ctx context.Context, c Completion)

func (f ReporterFunc) Report(ctx context.Context, c Completion) { f(ctx, c) }

// NopReporter discards every completion.
type NopReporter struct{}

func (NopReporter) Report(context.Context, Completion) {}
