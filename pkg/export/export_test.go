package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/core/model"
)

func sampleInstance(t *testing.T) *model.ProblemInstance {
	t.Helper()
	start, err := model.ParseTimestamp("2024-01-01 00:00:00")
	require.NoError(t, err)
	end := start.Add(3600)
	price, err := model.TableFromRows([][]float64{{3, 2, 3}})
	require.NoError(t, err)
	return &model.ProblemInstance{
		RunID:       "run",
		Name:        "daily",
		Seed:        42,
		GeneratedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Horizon:     model.Horizon{Start: start, End: end},
		Breaks:      []model.Break{{Duration: 60, Start: start, End: start.Add(60)}},
		Commercials: []model.Commercial{{
			ID: "B-12", Duration: 20, MinPlays: 1, MaxPlays: 2, Penalty: 5,
			ReleaseTime: start, DueTime: start.Add(40), Budget: 80, RequiredReach: 60,
		}},
		Competitors: []model.CompetitorPair{},
		Price:       price,
		Reach:       price,
	}
}

func outputConfig(dir string, csv bool) config.Config {
	cfg := config.Config{
		ScheduleStartTime: "2024-01-01 00:00:00",
		ScheduleEndTime:   "2024-01-02 00:00:00",
		Output:            config.OutputConfig{Dir: dir, CSV: csv},
	}
	cfg.SetDefaults()
	return cfg
}

func TestPaths(t *testing.T) {
	a := Paths(outputConfig("out", false), sampleInstance(t))
	assert.Equal(t, filepath.Join("out", "data_nsga", "24_2024-05-06_daily.json"), a.Instance)
	assert.Equal(t, filepath.Join("out", "data_cplex", "24_2024-05-06_daily.json"), a.Solver)
	assert.Empty(t, a.Roster)

	cfg := outputConfig("out", true)
	cfg.Scale = "day"
	a = Paths(cfg, sampleInstance(t))
	assert.Equal(t, filepath.Join("out", "data_nsga", "day_2024-05-06_daily.csv"), a.Roster)
}

func TestEnsureDirsAndRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inst := sampleInstance(t)
	a := Paths(outputConfig(dir, true), inst)
	require.NoError(t, EnsureDirs(a))

	require.NoError(t, WriteFile(a.Instance, func(w io.Writer) error { return WriteInstance(w, inst) }))
	back, err := ReadInstanceFile(a.Instance)
	require.NoError(t, err)
	assert.Equal(t, inst.Commercials, back.Commercials)
	assert.Equal(t, inst.Breaks, back.Breaks)
	assert.Equal(t, inst.Seed, back.Seed)

	b, err := os.ReadFile(a.Instance)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n    \"start_planning_horizon\": \"2024-01-01 00:00:00\"")
}

func TestReadInstanceRejectsSolverDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSolver(&buf, &model.SolverInstance{Scale: 1}))
	_, err := ReadInstance(&buf)
	assert.True(t, errors.Is(err, model.ErrSolverForm), "got %v", err)
}

func TestWriteRosterCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRosterCSV(&buf, sampleInstance(t)))
	recs, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "id", recs[0][0])
	assert.Equal(t, []string{"B-12", "20", "1", "2", "5", "2024-01-01 00:00:00", "2024-01-01 00:00:40", "80", "60"}, recs[1])
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("{"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAllLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	ok := func(w io.Writer) error {
		_, err := w.Write([]byte("{}"))
		return err
	}
	err := WriteAll([]Pending{
		{Path: filepath.Join(dir, "instance.json"), Write: ok},
		{Path: filepath.Join(dir, "solver.json"), Write: func(io.Writer) error { return boom }},
	})
	require.ErrorIs(t, err, boom)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, WriteAll([]Pending{
		{Path: filepath.Join(dir, "instance.json"), Write: ok},
		{Path: filepath.Join(dir, "solver.json"), Write: ok},
	}))
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
