// Package generator synthesizes commercial-break scheduling instances. A
// Generator runs six stages in a fixed order, each extending the same
// ProblemInstance: breaks, commercials, competitors, windows, curves and
// budgets. All randomness comes from one seeded source, so a seed and a
// configuration fully determine the instance.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/adbreak/breakgen/config"
	coremetrics "github.com/adbreak/breakgen/core/metrics"
	"github.com/adbreak/breakgen/core/model"
	"github.com/adbreak/breakgen/infra/logger"
)

// Stage names used in logs, metrics and errors.
const (
	StageBreaks      = "breaks"
	StageCommercials = "commercials"
	StageCompetitors = "competitors"
	StageWindows     = "windows"
	StageCurves      = "curves"
	StageBudgets     = "budgets"
)

// Generator builds problem instances from a configuration.
type Generator struct {
	cfg     config.Config
	horizon model.Horizon
	seed    int64
	seeded  bool
	rand    *rand.Rand
	log     logger.Logger
	rec     coremetrics.GenerationRecorder
	now     func() time.Time
	newID   func() string
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger replaces the component logger.
func WithLogger(l logger.Logger) Option { return func(g *Generator) { g.log = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r coremetrics.GenerationRecorder) Option {
	return func(g *Generator) { g.rec = r }
}

// WithSeed overrides the configured seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed, g.seeded = seed, true }
}

// WithClock sets the clock used for GeneratedAt, stage timings and the
// fallback seed.
func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

// WithRunID fixes the run identifier instead of drawing a random UUID.
func WithRunID(id string) Option {
	return func(g *Generator) { g.newID = func() string { return id } }
}

// New creates a Generator. The configuration must already be validated.
func New(cfg config.Config, opts ...Option) (*Generator, error) {
	h, err := cfg.Horizon()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:     cfg,
		horizon: h,
		log:     logger.New("generator"),
		rec:     coremetrics.NopRecorder{},
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	if cfg.Seed != nil {
		g.seed, g.seeded = *cfg.Seed, true
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.seeded {
		g.seed = g.now().UnixNano()
	}
	g.rand = rand.New(rand.NewSource(g.seed))
	return g, nil
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// NewInstance returns an empty instance carrying the horizon and metadata.
func (g *Generator) NewInstance() *model.ProblemInstance {
	return &model.ProblemInstance{
		RunID:       g.newID(),
		Name:        g.cfg.Name,
		Seed:        g.seed,
		GeneratedAt: g.now().UTC(),
		Horizon:     g.horizon,
	}
}

type stage struct {
	name string
	run  func(*model.ProblemInstance) (stageStats, error)
}

type stageStats struct {
	attempts  int
	fallbacks int
}

// Generate runs every stage in order. A failing stage aborts the run and no
// partial instance is returned.
func (g *Generator) Generate() (*model.ProblemInstance, error) {
	started := g.now()
	inst := g.NewInstance()
	stages := []stage{
		{StageBreaks, g.breaks},
		{StageCommercials, g.commercials},
		{StageCompetitors, g.competitors},
		{StageWindows, g.windows},
		{StageCurves, g.curves},
		{StageBudgets, g.budgets},
	}
	for _, s := range stages {
		t0 := g.now()
		stats, err := s.run(inst)
		if err != nil {
			if rerr := g.rec.RecordFailure(coremetrics.FailureEvent{Stage: s.name, Err: err}); rerr != nil {
				g.log.Errorf("record failure: %v", rerr)
			}
			return nil, fmt.Errorf("stage %s: %w", s.name, err)
		}
		ev := coremetrics.StageEvent{Stage: s.name, Duration: g.now().Sub(t0), Attempts: stats.attempts, Fallbacks: stats.fallbacks}
		if err := g.rec.RecordStage(ev); err != nil {
			g.log.Errorf("record stage %s: %v", s.name, err)
		}
	}
	ev := coremetrics.GenerationEvent{
		RunID:       inst.RunID,
		Name:        inst.Name,
		Seed:        inst.Seed,
		Breaks:      len(inst.Breaks),
		Commercials: len(inst.Commercials),
		Competitors: len(inst.Competitors),
		Duration:    g.now().Sub(started),
		Time:        g.now(),
	}
	if err := g.rec.RecordGeneration(ev); err != nil {
		g.log.Errorf("record generation: %v", err)
	}
	g.log.Infof("instance %s generated: %d breaks, %d commercials, %d competitor pairs (seed %d)",
		inst.Name, len(inst.Breaks), len(inst.Commercials), len(inst.Competitors), inst.Seed)
	return inst, nil
}

// GenerateBreaks runs the temporal layout stage on inst.
func (g *Generator) GenerateBreaks(inst *model.ProblemInstance) error {
	_, err := g.breaks(inst)
	return err
}

// GenerateCommercials runs the commercial roster stage on inst.
func (g *Generator) GenerateCommercials(inst *model.ProblemInstance) error {
	_, err := g.commercials(inst)
	return err
}

// GenerateCompetitors runs the competitor pair stage on inst.
func (g *Generator) GenerateCompetitors(inst *model.ProblemInstance) error {
	_, err := g.competitors(inst)
	return err
}

// GenerateWindows runs the release/due time stage on inst.
func (g *Generator) GenerateWindows(inst *model.ProblemInstance) error {
	_, err := g.windows(inst)
	return err
}

// GenerateCurves runs the price/reach curve stage on inst.
func (g *Generator) GenerateCurves(inst *model.ProblemInstance) error {
	_, err := g.curves(inst)
	return err
}

// GenerateBudgets runs the budget/reach target stage on inst.
func (g *Generator) GenerateBudgets(inst *model.ProblemInstance) error {
	_, err := g.budgets(inst)
	return err
}

// choice draws one element of set uniformly.
func (g *Generator) choice(set []int) int {
	return set[g.rand.Intn(len(set))]
}
