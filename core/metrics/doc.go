// Package metrics defines the events emitted while generating and converting
// instances and the recorder interfaces that consume them. The Prometheus
// implementation lives in infra/metrics; NopRecorder is used when metrics are
// disabled.
package metrics
