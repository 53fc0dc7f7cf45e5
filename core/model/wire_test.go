package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstance(t *testing.T) ProblemInstance {
	t.Helper()
	start, err := ParseTimestamp("2024-01-01 00:00:00")
	require.NoError(t, err)
	end, err := ParseTimestamp("2024-01-01 01:00:00")
	require.NoError(t, err)
	price, err := TableFromRows([][]float64{{6, 5, 6}})
	require.NoError(t, err)
	reach, err := TableFromRows([][]float64{{9, 8, 9}})
	require.NoError(t, err)
	return ProblemInstance{
		RunID:   "run-1",
		Name:    "small",
		Seed:    7,
		Horizon: Horizon{Start: start, End: end},
		Breaks:  []Break{{Duration: 90, Start: start, End: start.Add(90)}},
		Commercials: []Commercial{
			{ID: "A-1", Duration: 30, MinPlays: 1, MaxPlays: 2, Penalty: 10, ReleaseTime: start, DueTime: start.Add(90), Budget: 300, RequiredReach: 400},
			{ID: "B-2", Duration: 45, MinPlays: 2, MaxPlays: 3, Penalty: 12, ReleaseTime: start, DueTime: start.Add(90), Budget: 500, RequiredReach: 600},
		},
		Competitors: []CompetitorPair{NewCompetitorPair("B-2", "A-1")},
		Price:       price,
		Reach:       reach,
	}
}

func TestInstanceWireLayout(t *testing.T) {
	inst := sampleInstance(t)
	b, err := json.Marshal(inst)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2024-01-01 00:00:00", raw["start_planning_horizon"])
	assert.EqualValues(t, 1, raw["breaks"])
	assert.EqualValues(t, 2, raw["commercials"])
	assert.Equal(t, []any{"A-1", "B-2"}, raw["name"])
	assert.Equal(t, []any{map[string]any{"start": "2024-01-01 00:00:00", "end": "2024-01-01 00:01:30"}}, raw["break_length"])
	assert.Equal(t, []any{[]any{"A-1", "B-2"}}, raw["competitors"])
	assert.NotContains(t, raw, "scale")
}

func TestInstanceWireRoundTrip(t *testing.T) {
	inst := sampleInstance(t)
	b, err := json.Marshal(inst)
	require.NoError(t, err)

	var got ProblemInstance
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, inst.Name, got.Name)
	assert.Equal(t, inst.Horizon, got.Horizon)
	assert.Equal(t, inst.Breaks, got.Breaks)
	assert.Equal(t, inst.Commercials, got.Commercials)
	assert.Equal(t, inst.Competitors, got.Competitors)
	assert.Equal(t, inst.Price.Rows(), got.Price.Rows())
}

func TestInstanceRejectsSolverDocument(t *testing.T) {
	var p ProblemInstance
	err := json.Unmarshal([]byte(`{"scale": 1, "breaks": 0}`), &p)
	if !errors.Is(err, ErrSolverForm) {
		t.Fatalf("expected ErrSolverForm, got %v", err)
	}
}

func TestInstanceRejectsMismatchedColumns(t *testing.T) {
	inst := sampleInstance(t)
	b, err := json.Marshal(inst)
	require.NoError(t, err)
	broken := strings.Replace(string(b), `"penalty":[10,12]`, `"penalty":[10]`, 1)
	var p ProblemInstance
	err = json.Unmarshal([]byte(broken), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "penalty")
}

func TestCompetitorPairCanonical(t *testing.T) {
	if NewCompetitorPair("Z-1", "A-3") != NewCompetitorPair("A-3", "Z-1") {
		t.Fatalf("pairs should be order independent")
	}
	if p := NewCompetitorPair("Z-1", "A-3"); p[0] != "A-3" {
		t.Fatalf("expected sorted pair, got %v", p)
	}
}

func TestTimestampRejectsTicks(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`9`), &ts); err == nil {
		t.Fatalf("expected error for integer timestamp")
	}
}
