package generator

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbreak/breakgen/config"
	coremetrics "github.com/adbreak/breakgen/core/metrics"
	"github.com/adbreak/breakgen/core/model"
	"github.com/adbreak/breakgen/infra/logger"
)

func testConfig(seed int64) config.Config {
	cfg := config.Config{
		Name:                  "test",
		Seed:                  &seed,
		ScheduleStartTime:     "2024-01-01 00:00:00",
		ScheduleEndTime:       "2024-01-01 01:00:00",
		BreakCount:            []int{8, 10, 12},
		BreakDuration:         []int{60, 90, 120, 180},
		CommercialCount:       []int{15, 20},
		CommercialDuration:    []int{15, 30, 45},
		CommercialMinimumPlay: []int{1, 2, 3},
		CommercialMaximumPlay: []int{2, 3, 4},
		Penalty:               []int{8, 10, 12},
		PriceRange:            []int{40, 50, 60},
		ReachRange:            []int{30, 35},
		BudgetChance:          []int{10, 20, 30},
		ReachChance:           []int{5, 15},
		CompetitorsCount:      10,
	}
	cfg.SetDefaults()
	return cfg
}

func newTestGenerator(t *testing.T, cfg config.Config, opts ...Option) *Generator {
	t.Helper()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := []Option{
		WithLogger(logger.NopLogger{}),
		WithClock(func() time.Time { return fixed }),
		WithRunID("run"),
	}
	g, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return g
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := testConfig(42)
	a, err := newTestGenerator(t, cfg).Generate()
	require.NoError(t, err)
	b, err := newTestGenerator(t, cfg).Generate()
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(ja), string(jb))

	c, err := newTestGenerator(t, testConfig(43)).Generate()
	require.NoError(t, err)
	jc, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotEqual(t, string(ja), string(jc))
}

func TestGeneratorSeedOverride(t *testing.T) {
	g := newTestGenerator(t, testConfig(1), WithSeed(99))
	assert.Equal(t, int64(99), g.Seed())
	inst, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, int64(99), inst.Seed)
}

//nolint:gocyclo
func TestGeneratorSeedFromClock(t *testing.T) {
	cfg := testConfig(0)
	cfg.Seed = nil
	g := newTestGenerator(t, cfg)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed.UnixNano(), g.Seed())

	a, err := g.Generate()
	require.NoError(t, err)
	b, err := newTestGenerator(t, cfg).Generate()
	require.NoError(t, err)
	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(ja), string(jb))

	override := newTestGenerator(t, cfg, WithSeed(5))
	assert.Equal(t, int64(5), override.Seed())
}

func TestGenerateInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		inst, err := newTestGenerator(t, testConfig(seed)).Generate()
		require.NoError(t, err, "seed %d", seed)
		h := inst.Horizon

		require.NotEmpty(t, inst.Breaks)
		assert.True(t, inst.Breaks[0].Start.Equal(h.Start.Time), "seed %d: first break must start at horizon start", seed)
		for i, b := range inst.Breaks {
			assert.True(t, b.End.Equal(b.Start.Add(b.Duration).Time), "seed %d: break %d end", seed, i)
			if i+1 < len(inst.Breaks) {
				assert.True(t, b.End.Equal(inst.Breaks[i+1].Start.Time), "seed %d: gap after break %d", seed, i)
			}
		}
		assert.False(t, inst.Breaks[len(inst.Breaks)-1].End.After(h.End.Time), "seed %d: breaks overrun horizon", seed)

		ids := map[string]bool{}
		for _, c := range inst.Commercials {
			assert.False(t, ids[c.ID], "seed %d: duplicate id %s", seed, c.ID)
			ids[c.ID] = true
			assert.LessOrEqual(t, c.MinPlays, c.MaxPlays)
			assert.False(t, c.DueTime.Before(c.ReleaseTime.Time), "seed %d: %s due before release", seed, c.ID)
			assert.False(t, c.DueTime.After(h.End.Time), "seed %d: %s due after horizon", seed, c.ID)
			assert.GreaterOrEqual(t, c.Budget, 0)
			assert.GreaterOrEqual(t, c.RequiredReach, 0)
		}

		pairs := map[model.CompetitorPair]bool{}
		for _, p := range inst.Competitors {
			assert.NotEqual(t, p[0], p[1])
			assert.Less(t, p[0], p[1])
			assert.False(t, pairs[p], "seed %d: duplicate pair %v", seed, p)
			pairs[p] = true
		}
		assert.Len(t, inst.Competitors, 10)

		rows, cols := inst.Price.Dims()
		assert.Equal(t, len(inst.Breaks), rows)
		assert.Equal(t, inst.MaxPosition(), cols)
		rows, cols = inst.Reach.Dims()
		assert.Equal(t, len(inst.Breaks), rows)
		assert.Equal(t, inst.MaxPosition(), cols)
	}
}

type recorder struct {
	stages   []coremetrics.StageEvent
	gens     []coremetrics.GenerationEvent
	failures []coremetrics.FailureEvent
}

func (r *recorder) RecordStage(ev coremetrics.StageEvent) error {
	r.stages = append(r.stages, ev)
	return nil
}

func (r *recorder) RecordGeneration(ev coremetrics.GenerationEvent) error {
	r.gens = append(r.gens, ev)
	return nil
}

func (r *recorder) RecordFailure(ev coremetrics.FailureEvent) error {
	r.failures = append(r.failures, ev)
	return nil
}

func TestGenerateRecordsStages(t *testing.T) {
	rec := &recorder{}
	inst, err := newTestGenerator(t, testConfig(5), WithRecorder(rec)).Generate()
	require.NoError(t, err)

	var names []string
	for _, s := range rec.stages {
		names = append(names, s.Stage)
	}
	assert.Equal(t, []string{StageBreaks, StageCommercials, StageCompetitors, StageWindows, StageCurves, StageBudgets}, names)
	require.Len(t, rec.gens, 1)
	assert.Equal(t, len(inst.Commercials), rec.gens[0].Commercials)
	assert.Equal(t, "run", rec.gens[0].RunID)
	assert.Empty(t, rec.failures)
}

func TestGenerateFailureAbortsRun(t *testing.T) {
	cfg := testConfig(5)
	cfg.CommercialCount = []int{3}
	cfg.CompetitorsCount = 4
	rec := &recorder{}
	inst, err := newTestGenerator(t, cfg, WithRecorder(rec)).Generate()
	require.Error(t, err)
	assert.Nil(t, inst)
	assert.True(t, errors.Is(err, ErrExhausted))
	require.Len(t, rec.failures, 1)
	assert.Equal(t, StageCompetitors, rec.failures[0].Stage)
	assert.Empty(t, rec.gens)
}
