// Package convert quantizes a generated instance into solver units.
//
// Absolute timestamps become tick offsets from the horizon start, durations
// are expressed in ticks, price, reach and penalty are divided by ten and
// budget and required reach by one hundred. The horizon length is reported
// as a whole number of hours.
package convert

import (
	"fmt"
	"time"

	"github.com/adbreak/breakgen/core/model"
)

const (
	// Tick is the solver time unit.
	Tick = 10 * time.Second

	tickSeconds   = 10
	curveDivisor  = 10
	targetDivisor = 100
)

// Convert returns the solver form of inst. inst is not modified. The result is
// a distinct type, so a converted instance cannot be converted again.
func Convert(inst *model.ProblemInstance) (*model.SolverInstance, error) {
	if err := validate(inst); err != nil {
		return nil, err
	}
	start := inst.Horizon.Start
	n := len(inst.Commercials)
	out := &model.SolverInstance{
		RunID:                inst.RunID,
		InstanceName:         inst.Name,
		Seed:                 inst.Seed,
		GeneratedAt:          inst.GeneratedAt,
		Scale:                inst.Horizon.Hours(),
		StartPlanningHorizon: inst.Horizon.Start,
		EndPlanningHorizon:   inst.Horizon.End,
		Breaks:               len(inst.Breaks),
		BreakDuration:        make([]int, len(inst.Breaks)),
		BreakLength:          make([]model.TickSpan, len(inst.Breaks)),
		Commercials:          n,
		Name:                 make([]string, n),
		CommercialDuration:   make([]int, n),
		CommercialCopy:       make([]model.PlayRange, n),
		Penalty:              make([]float64, n),
		Competitors:          append([]model.CompetitorPair{}, inst.Competitors...),
		ReleaseTime:          make([]int, n),
		DueTime:              make([]int, n),
		Price:                inst.Price.Divided(curveDivisor).Rows(),
		Reach:                inst.Reach.Divided(curveDivisor).Rows(),
		Budget:               make([]float64, n),
		RequiredReach:        make([]float64, n),
	}
	for i, b := range inst.Breaks {
		offset := offsetSeconds(start, b.Start)
		out.BreakDuration[i] = b.Duration / tickSeconds
		out.BreakLength[i] = model.TickSpan{
			Start: offset / tickSeconds,
			End:   (offset + b.Duration) / tickSeconds,
		}
	}
	for i, c := range inst.Commercials {
		out.Name[i] = c.ID
		out.CommercialDuration[i] = c.Duration / tickSeconds
		out.CommercialCopy[i] = model.PlayRange{Max: c.MaxPlays, Min: c.MinPlays}
		out.Penalty[i] = float64(c.Penalty) / curveDivisor
		out.ReleaseTime[i] = Ticks(start, c.ReleaseTime)
		out.DueTime[i] = Ticks(start, c.DueTime)
		out.Budget[i] = float64(c.Budget) / targetDivisor
		out.RequiredReach[i] = float64(c.RequiredReach) / targetDivisor
	}
	return out, nil
}

// Ticks returns the whole number of ticks between origin and t.
func Ticks(origin, t model.Timestamp) int {
	return offsetSeconds(origin, t) / tickSeconds
}

func offsetSeconds(origin, t model.Timestamp) int {
	return int(t.Sub(origin.Time) / time.Second)
}

//nolint:gocyclo
func validate(inst *model.ProblemInstance) error {
	if inst == nil {
		return &Error{Field: "instance", Err: fmt.Errorf("nil instance")}
	}
	h := inst.Horizon
	if !h.End.After(h.Start.Time) {
		return &Error{Field: "end_planning_horizon", Err: fmt.Errorf("horizon end %s not after start %s", h.End, h.Start)}
	}
	inHorizon := func(field string, i int, t model.Timestamp) error {
		if t.Before(h.Start.Time) || t.After(h.End.Time) {
			return &Error{Field: fmt.Sprintf("%s[%d]", field, i), Err: fmt.Errorf("%s outside horizon [%s, %s]", t, h.Start, h.End)}
		}
		return nil
	}
	for i, b := range inst.Breaks {
		if err := inHorizon("break_length.start", i, b.Start); err != nil {
			return err
		}
		if err := inHorizon("break_length.end", i, b.End); err != nil {
			return err
		}
		if b.Duration < 0 {
			return &Error{Field: fmt.Sprintf("break_duration[%d]", i), Err: fmt.Errorf("negative duration %d", b.Duration)}
		}
	}
	for i, c := range inst.Commercials {
		if err := inHorizon("release_time", i, c.ReleaseTime); err != nil {
			return err
		}
		if err := inHorizon("due_time", i, c.DueTime); err != nil {
			return err
		}
	}
	tables := []struct {
		field string
		tbl   model.Table
	}{{"price", inst.Price}, {"reach", inst.Reach}}
	for _, tt := range tables {
		if rows, _ := tt.tbl.Dims(); rows != len(inst.Breaks) {
			return &Error{Field: tt.field, Err: fmt.Errorf("%d rows for %d breaks", rows, len(inst.Breaks))}
		}
	}
	return nil
}
