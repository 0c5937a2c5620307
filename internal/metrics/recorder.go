package metrics

import "time"

// RunOutcome is the final status of a generation run.
type RunOutcome string

const (
	RunSuccess  RunOutcome = "success"
	RunFailed   RunOutcome = "failed"
	RunCanceled RunOutcome = "canceled"
)

// Page write results, as reported by the output writer.
const (
	PageWritten   = "written"
	PageUnchanged = "unchanged"
	PageRemoved   = "removed"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	IncArticleGenerated(kind string)
	IncRenderFailure()
	AddUnresolvedReferences(n int)
	IncIncompleteInheritance()
	IncPageResult(result string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

// ObserveStageDuration does nothing.
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}

// ObserveRunDuration does nothing.
func (NoopRecorder) ObserveRunDuration(time.Duration) {}

// IncRunOutcome does nothing.
func (NoopRecorder) IncRunOutcome(RunOutcome) {}

// IncArticleGenerated does nothing.
func (NoopRecorder) IncArticleGenerated(string) {}

// IncRenderFailure does nothing.
func (NoopRecorder) IncRenderFailure() {}

// AddUnresolvedReferences does nothing.
func (NoopRecorder) AddUnresolvedReferences(int) {}

// IncIncompleteInheritance does nothing.
func (NoopRecorder) IncIncompleteInheritance() {}

// IncPageResult does nothing.
func (NoopRecorder) IncPageResult(string) {}
