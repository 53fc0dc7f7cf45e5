package scenarios

import (
	"errors"
	"fmt"

	"github.com/adbreak/breakgen/core/model"
)

// ErrInconsistent is matched by every Verify failure.
var ErrInconsistent = errors.New("inconsistent instance")

// Verify checks the structural invariants of a generated instance: contiguous
// breaks inside the horizon, unique commercial ids, ordered windows, canonical
// competitor pairs and curve tables shaped breaks x max position.
//
//nolint:gocyclo
func Verify(inst *model.ProblemInstance) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
	}
	h := inst.Horizon
	cursor := h.Start
	for i, b := range inst.Breaks {
		if !b.Start.Equal(cursor.Time) {
			return fail("break %d starts at %s, expected %s", i, b.Start, cursor)
		}
		if b.End.Sub(b.Start.Time).Seconds() != float64(b.Duration) {
			return fail("break %d spans %s for duration %d", i, b.End.Sub(b.Start.Time), b.Duration)
		}
		cursor = b.End
	}
	if cursor.After(h.End.Time) {
		return fail("breaks end at %s after horizon end %s", cursor, h.End)
	}

	ids := make(map[string]struct{}, len(inst.Commercials))
	for _, c := range inst.Commercials {
		if _, dup := ids[c.ID]; dup {
			return fail("duplicate commercial id %s", c.ID)
		}
		ids[c.ID] = struct{}{}
		if c.MinPlays > c.MaxPlays {
			return fail("commercial %s min plays %d > max plays %d", c.ID, c.MinPlays, c.MaxPlays)
		}
		if c.DueTime.Before(c.ReleaseTime.Time) || c.DueTime.After(h.End.Time) || c.ReleaseTime.Before(h.Start.Time) {
			return fail("commercial %s window [%s, %s] out of order", c.ID, c.ReleaseTime, c.DueTime)
		}
		if c.Budget < 0 || c.RequiredReach < 0 {
			return fail("commercial %s has negative targets", c.ID)
		}
	}

	pairs := make(map[model.CompetitorPair]struct{}, len(inst.Competitors))
	for _, p := range inst.Competitors {
		if p[0] >= p[1] {
			return fail("competitor pair %v not canonical", p)
		}
		if _, ok := ids[p[0]]; !ok {
			return fail("competitor %s unknown", p[0])
		}
		if _, ok := ids[p[1]]; !ok {
			return fail("competitor %s unknown", p[1])
		}
		if _, dup := pairs[p]; dup {
			return fail("duplicate competitor pair %v", p)
		}
		pairs[p] = struct{}{}
	}

	width := inst.MaxPosition()
	for _, tt := range []struct {
		name string
		tbl  model.Table
	}{{"price", inst.Price}, {"reach", inst.Reach}} {
		rows, cols := tt.tbl.Dims()
		if rows != len(inst.Breaks) || (rows > 0 && cols != width) {
			return fail("%s table is %dx%d, expected %dx%d", tt.name, rows, cols, len(inst.Breaks), width)
		}
	}
	return nil
}

// Check compares inst against the expected sizes.
func (e Expected) Check(inst *model.ProblemInstance) error {
	if len(inst.Breaks) < e.MinBreaks {
		return fmt.Errorf("%d breaks, expected at least %d", len(inst.Breaks), e.MinBreaks)
	}
	if len(inst.Commercials) < e.MinCommercials {
		return fmt.Errorf("%d commercials, expected at least %d", len(inst.Commercials), e.MinCommercials)
	}
	if e.Competitors != nil && len(inst.Competitors) != *e.Competitors {
		return fmt.Errorf("%d competitor pairs, expected %d", len(inst.Competitors), *e.Competitors)
	}
	return nil
}
