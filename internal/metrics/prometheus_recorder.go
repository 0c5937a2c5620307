package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "apimd"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                   *prom.Registry
	stageDuration         *prom.HistogramVec
	runDuration           prom.Histogram
	runOutcome            *prom.CounterVec
	articlesGenerated     *prom.CounterVec
	renderFailures        prom.Counter
	unresolvedReferences  prom.Counter
	incompleteInheritance prom.Counter
	pagesWritten          *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual run stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total generation run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Generation runs by final status",
	}, []string{"outcome"})
	pr.articlesGenerated = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "articles_generated_total",
		Help:      "Articles generated by API item kind",
	}, []string{"kind"})
	pr.renderFailures = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "render_failures_total",
		Help:      "Articles that failed to render",
	})
	pr.unresolvedReferences = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "unresolved_references_total",
		Help:      "Declaration references that did not resolve to a model item",
	})
	pr.incompleteInheritance = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "incomplete_inheritance_total",
		Help:      "Articles whose inherited members may be incomplete",
	})
	pr.pagesWritten = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "pages_written_total",
		Help:      "Output pages by write result",
	}, []string{"result"})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.runOutcome, pr.articlesGenerated,
		pr.renderFailures, pr.unresolvedReferences, pr.incompleteInheritance, pr.pagesWritten)
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// ObserveStageDuration records d under the stage label.
func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRunDuration records the wall time of one run.
func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

// IncRunOutcome counts a finished run.
func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// IncArticleGenerated counts an article by item kind.
func (p *PrometheusRecorder) IncArticleGenerated(kind string) {
	if p == nil {
		return
	}
	p.articlesGenerated.WithLabelValues(kind).Inc()
}

// IncRenderFailure counts a page that failed to render.
func (p *PrometheusRecorder) IncRenderFailure() {
	if p == nil {
		return
	}
	p.renderFailures.Inc()
}

// AddUnresolvedReferences adds n references that rendered as plain text.
func (p *PrometheusRecorder) AddUnresolvedReferences(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.unresolvedReferences.Add(float64(n))
}

// IncIncompleteInheritance counts an article whose inherited members may be incomplete.
func (p *PrometheusRecorder) IncIncompleteInheritance() {
	if p == nil {
		return
	}
	p.incompleteInheritance.Inc()
}

// IncPageResult counts a page by write result.
func (p *PrometheusRecorder) IncPageResult(result string) {
	if p == nil {
		return
	}
	p.pagesWritten.WithLabelValues(result).Inc()
}
