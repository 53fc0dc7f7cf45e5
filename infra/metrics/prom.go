package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adbreak/breakgen/core/generator"
	coremetrics "github.com/adbreak/breakgen/core/metrics"
)

// PromRecorder records generation and conversion events in Prometheus metrics.
type PromRecorder struct {
	stageDuration *prometheus.HistogramVec
	attempts      *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	instances     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	conversions   *prometheus.CounterVec
	lastSize      *prometheus.GaugeVec
}

// NewPromRecorder registers the breakgen metrics on reg. A nil registerer
// defaults to the global Prometheus registerer. Metrics already registered by
// a previous recorder are reused.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PromRecorder{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breakgen_stage_duration_seconds",
			Help:    "Time spent in each generation stage",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakgen_stage_attempts_total",
			Help: "Samples drawn by rejection loops",
		}, []string{"stage"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakgen_stage_fallbacks_total",
			Help: "Records corrected by a fallback policy",
		}, []string{"stage"}),
		instances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakgen_instances_total",
			Help: "Generated instances",
		}, []string{"name"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakgen_failures_total",
			Help: "Runs aborted by a stage",
		}, []string{"stage", "exhausted"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakgen_conversions_total",
			Help: "Instances converted to solver form",
		}, []string{"scale"}),
		lastSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "breakgen_last_instance_size",
			Help: "Entity counts of the last generated instance",
		}, []string{"name", "entity"}),
	}

	var err error
	if r.stageDuration, err = register(reg, r.stageDuration); err != nil {
		return nil, err
	}
	if r.attempts, err = register(reg, r.attempts); err != nil {
		return nil, err
	}
	if r.fallbacks, err = register(reg, r.fallbacks); err != nil {
		return nil, err
	}
	if r.instances, err = register(reg, r.instances); err != nil {
		return nil, err
	}
	if r.failures, err = register(reg, r.failures); err != nil {
		return nil, err
	}
	if r.conversions, err = register(reg, r.conversions); err != nil {
		return nil, err
	}
	if r.lastSize, err = register(reg, r.lastSize); err != nil {
		return nil, err
	}
	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordStage observes the stage duration and adds its counters.
func (r *PromRecorder) RecordStage(ev coremetrics.StageEvent) error {
	r.stageDuration.WithLabelValues(ev.Stage).Observe(ev.Duration.Seconds())
	r.attempts.WithLabelValues(ev.Stage).Add(float64(ev.Attempts))
	r.fallbacks.WithLabelValues(ev.Stage).Add(float64(ev.Fallbacks))
	return nil
}

// RecordGeneration counts the instance and publishes its size.
func (r *PromRecorder) RecordGeneration(ev coremetrics.GenerationEvent) error {
	r.instances.WithLabelValues(ev.Name).Inc()
	r.lastSize.WithLabelValues(ev.Name, "breaks").Set(float64(ev.Breaks))
	r.lastSize.WithLabelValues(ev.Name, "commercials").Set(float64(ev.Commercials))
	r.lastSize.WithLabelValues(ev.Name, "competitors").Set(float64(ev.Competitors))
	return nil
}

// RecordFailure counts an aborted run.
func (r *PromRecorder) RecordFailure(ev coremetrics.FailureEvent) error {
	exhausted := errors.Is(ev.Err, generator.ErrExhausted)
	r.failures.WithLabelValues(ev.Stage, strconv.FormatBool(exhausted)).Inc()
	return nil
}

// RecordConversion counts a solver conversion.
func (r *PromRecorder) RecordConversion(ev coremetrics.ConversionEvent) error {
	r.conversions.WithLabelValues(strconv.Itoa(ev.Scale)).Inc()
	return nil
}
