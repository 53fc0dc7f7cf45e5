// Package app runs the generation pipeline end to end: generate, convert,
// then persist both artifacts and the run metrics.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/core/convert"
	"github.com/adbreak/breakgen/core/generator"
	coremetrics "github.com/adbreak/breakgen/core/metrics"
	"github.com/adbreak/breakgen/core/model"
	"github.com/adbreak/breakgen/infra/logger"
	"github.com/adbreak/breakgen/infra/metrics"
	"github.com/adbreak/breakgen/pkg/export"
)

// Service owns the metrics registry shared by every run it performs.
type Service struct {
	log     logger.Logger
	reg     *prometheus.Registry
	rec     metrics.Recorder
	genOpts []generator.Option
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithGeneratorOptions are applied to every generator the service builds.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(s *Service) { s.genOpts = append(s.genOpts, opts...) }
}

// WithRecorder adds a recorder next to the Prometheus one.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.rec = metrics.NewMultiRecorder(s.rec, r) }
}

// Result holds both forms of a generated instance and where they were written.
type Result struct {
	Instance *model.ProblemInstance
	Solver   *model.SolverInstance
	Files    export.Artifacts
}

// New creates a Service with a private Prometheus registry.
func New(opts ...Option) (*Service, error) {
	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPromRecorder(reg)
	if err != nil {
		return nil, fmt.Errorf("prom recorder: %w", err)
	}
	s := &Service{
		log: logger.New("service"),
		reg: reg,
		rec: prom,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Gatherer exposes the metrics collected so far.
func (s *Service) Gatherer() prometheus.Gatherer { return s.reg }

// Generate builds one instance from cfg, converts it and writes both
// artifacts. A non-nil seed overrides the configured one. Nothing is written
// unless generation and conversion both succeed.
func (s *Service) Generate(ctx context.Context, cfg *config.Config, seed *int64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := append([]generator.Option{
		generator.WithLogger(logger.New("generator")),
		generator.WithRecorder(s.rec),
	}, s.genOpts...)
	if seed != nil {
		opts = append(opts, generator.WithSeed(*seed))
	}
	g, err := generator.New(*cfg, opts...)
	if err != nil {
		return nil, err
	}
	inst, err := g.Generate()
	if err != nil {
		return nil, err
	}
	solver, err := s.convert(inst)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := export.Paths(*cfg, inst)
	if err := export.EnsureDirs(files); err != nil {
		return nil, err
	}
	pending := []export.Pending{
		{Path: files.Instance, Write: func(w io.Writer) error { return export.WriteInstance(w, inst) }},
		{Path: files.Solver, Write: func(w io.Writer) error { return export.WriteSolver(w, solver) }},
	}
	if files.Roster != "" {
		pending = append(pending, export.Pending{Path: files.Roster, Write: func(w io.Writer) error { return export.WriteRosterCSV(w, inst) }})
	}
	if err := export.WriteAll(pending); err != nil {
		return nil, err
	}
	s.log.Infof("wrote %s and %s", files.Instance, files.Solver)

	if err := s.WriteMetrics(cfg.Metrics.Textfile); err != nil {
		s.log.Warnf("metrics textfile: %v", err)
	}
	return &Result{Instance: inst, Solver: solver, Files: files}, nil
}

// ConvertFile converts the instance stored at in and writes the solver form
// to w.
func (s *Service) ConvertFile(ctx context.Context, in string, w io.Writer) (*model.SolverInstance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst, err := export.ReadInstanceFile(in)
	if err != nil {
		return nil, &convert.Error{Field: "instance", Err: err}
	}
	solver, err := s.convert(inst)
	if err != nil {
		return nil, err
	}
	if err := export.WriteSolver(w, solver); err != nil {
		return nil, err
	}
	return solver, nil
}

// WriteMetrics writes the collected metrics to path. An empty path is a no-op.
func (s *Service) WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path, s.reg)
}

func (s *Service) convert(inst *model.ProblemInstance) (*model.SolverInstance, error) {
	solver, err := convert.Convert(inst)
	if err != nil {
		return nil, err
	}
	ev := coremetrics.ConversionEvent{RunID: inst.RunID, Scale: solver.Scale, Time: s.now()}
	if err := s.rec.RecordConversion(ev); err != nil {
		s.log.Errorf("record conversion: %v", err)
	}
	s.log.Debugw("instance converted", map[string]any{"run_id": inst.RunID, "scale": solver.Scale})
	return solver, nil
}
