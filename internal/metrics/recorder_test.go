package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		rec.ObserveStageDuration("write", time.Millisecond)
		rec.IncRunOutcome(RunCanceled)
		rec.AddUnresolvedReferences(2)
		rec.IncPageResult(PageRemoved)
	})
}
