// Package metrics records generation metrics.
//
// Components receive a Recorder and default to NoopRecorder, so no call
// site needs a nil check:
//
//	rec := metrics.Recorder(metrics.NoopRecorder{})
//	if cfg.Metrics.Textfile != "" {
//	    rec = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
//	}
//
// A PrometheusRecorder can be dumped in the node_exporter textfile format
// with WriteTextfile after a run.
package metrics
