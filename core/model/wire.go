package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSolverForm is returned when a solver instance is decoded as a
// human-readable instance.
var ErrSolverForm = errors.New("document is already in solver form")

type span struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end"`
}

// wireInstance is the flat, column-oriented layout consumed by the
// downstream tooling.
type wireInstance struct {
	RunID        string    `json:"run_id"`
	InstanceName string    `json:"instance_name"`
	Seed         int64     `json:"seed"`
	GeneratedAt  time.Time `json:"generated_at"`

	StartPlanningHorizon Timestamp        `json:"start_planning_horizon"`
	EndPlanningHorizon   Timestamp        `json:"end_planning_horizon"`
	Breaks               int              `json:"breaks"`
	BreakDuration        []int            `json:"break_duration"`
	BreakLength          []span           `json:"break_length"`
	Commercials          int              `json:"commercials"`
	Name                 []string         `json:"name"`
	CommercialDuration   []int            `json:"commercial_duration"`
	CommercialCopy       []PlayRange      `json:"commercial_copy"`
	Penalty              []int            `json:"penalty"`
	Competitors          []CompetitorPair `json:"competitors"`
	ReleaseTime          []Timestamp      `json:"release_time"`
	DueTime              []Timestamp      `json:"due_time"`
	Price                Table            `json:"price"`
	Reach                Table            `json:"reach"`
	Budget               []int            `json:"budget"`
	RequiredReach        []int            `json:"required_reach"`

	// Scale only exists in solver documents.
	Scale *int `json:"scale,omitempty"`
}

func (p ProblemInstance) MarshalJSON() ([]byte, error) {
	w := wireInstance{
		RunID:                p.RunID,
		InstanceName:         p.Name,
		Seed:                 p.Seed,
		GeneratedAt:          p.GeneratedAt,
		StartPlanningHorizon: p.Horizon.Start,
		EndPlanningHorizon:   p.Horizon.End,
		Breaks:               len(p.Breaks),
		BreakDuration:        make([]int, len(p.Breaks)),
		BreakLength:          make([]span, len(p.Breaks)),
		Commercials:          len(p.Commercials),
		Name:                 make([]string, len(p.Commercials)),
		CommercialDuration:   make([]int, len(p.Commercials)),
		CommercialCopy:       make([]PlayRange, len(p.Commercials)),
		Penalty:              make([]int, len(p.Commercials)),
		Competitors:          p.Competitors,
		ReleaseTime:          make([]Timestamp, len(p.Commercials)),
		DueTime:              make([]Timestamp, len(p.Commercials)),
		Price:                p.Price,
		Reach:                p.Reach,
		Budget:               make([]int, len(p.Commercials)),
		RequiredReach:        make([]int, len(p.Commercials)),
	}
	if w.Competitors == nil {
		w.Competitors = []CompetitorPair{}
	}
	for i, b := range p.Breaks {
		w.BreakDuration[i] = b.Duration
		w.BreakLength[i] = span{Start: b.Start, End: b.End}
	}
	for i, c := range p.Commercials {
		w.Name[i] = c.ID
		w.CommercialDuration[i] = c.Duration
		w.CommercialCopy[i] = PlayRange{Max: c.MaxPlays, Min: c.MinPlays}
		w.Penalty[i] = c.Penalty
		w.ReleaseTime[i] = c.ReleaseTime
		w.DueTime[i] = c.DueTime
		w.Budget[i] = c.Budget
		w.RequiredReach[i] = c.RequiredReach
	}
	return json.Marshal(w)
}

//nolint:gocyclo
func (p *ProblemInstance) UnmarshalJSON(b []byte) error {
	var probe struct {
		Scale *int `json:"scale"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.Scale != nil {
		return ErrSolverForm
	}
	var w wireInstance
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Breaks != len(w.BreakDuration) || w.Breaks != len(w.BreakLength) {
		return fmt.Errorf("breaks=%d but break_duration has %d and break_length has %d entries",
			w.Breaks, len(w.BreakDuration), len(w.BreakLength))
	}
	n := w.Commercials
	cols := []struct {
		field string
		got   int
	}{
		{"name", len(w.Name)},
		{"commercial_duration", len(w.CommercialDuration)},
		{"commercial_copy", len(w.CommercialCopy)},
		{"penalty", len(w.Penalty)},
		{"release_time", len(w.ReleaseTime)},
		{"due_time", len(w.DueTime)},
		{"budget", len(w.Budget)},
		{"required_reach", len(w.RequiredReach)},
	}
	for _, c := range cols {
		if c.got != n {
			return fmt.Errorf("commercials=%d but %s has %d entries", n, c.field, c.got)
		}
	}

	out := ProblemInstance{
		RunID:       w.RunID,
		Name:        w.InstanceName,
		Seed:        w.Seed,
		GeneratedAt: w.GeneratedAt,
		Horizon:     Horizon{Start: w.StartPlanningHorizon, End: w.EndPlanningHorizon},
		Breaks:      make([]Break, w.Breaks),
		Commercials: make([]Commercial, n),
		Competitors: w.Competitors,
		Price:       w.Price,
		Reach:       w.Reach,
	}
	for i := range out.Breaks {
		out.Breaks[i] = Break{Duration: w.BreakDuration[i], Start: w.BreakLength[i].Start, End: w.BreakLength[i].End}
	}
	for i := range out.Commercials {
		out.Commercials[i] = Commercial{
			ID:            w.Name[i],
			Duration:      w.CommercialDuration[i],
			MinPlays:      w.CommercialCopy[i].Min,
			MaxPlays:      w.CommercialCopy[i].Max,
			Penalty:       w.Penalty[i],
			ReleaseTime:   w.ReleaseTime[i],
			DueTime:       w.DueTime[i],
			Budget:        w.Budget[i],
			RequiredReach: w.RequiredReach[i],
		}
	}
	*p = out
	return nil
}
