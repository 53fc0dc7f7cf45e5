package model

import (
	"time"
)

// Horizon is the planning window all breaks and commercials fall into.
type Horizon struct {
	Start Timestamp
	End   Timestamp
}

// Seconds returns the horizon length in whole seconds.
func (h Horizon) Seconds() int {
	return int(h.End.Sub(h.Start.Time) / time.Second)
}

// Hours returns the horizon length in whole hours.
func (h Horizon) Hours() int {
	return int(h.End.Sub(h.Start.Time) / time.Hour)
}

// Break is a contiguous advertising interval. End equals Start plus Duration.
type Break struct {
	Duration int // seconds
	Start    Timestamp
	End      Timestamp
}

// Commercial is one advertisement of the roster together with its temporal
// window and solver-side targets.
type Commercial struct {
	ID            string
	Duration      int // seconds
	MinPlays      int
	MaxPlays      int
	Penalty       int
	ReleaseTime   Timestamp
	DueTime       Timestamp
	Budget        int
	RequiredReach int
}

// RequiredAirtime is the airtime in seconds needed to play the commercial
// MaxPlays times.
func (c Commercial) RequiredAirtime() int {
	return c.MaxPlays * c.Duration
}

// ExpectedPlays is the integer mean of the play bounds.
func (c Commercial) ExpectedPlays() int {
	return (c.MinPlays + c.MaxPlays) / 2
}

// CompetitorPair is an unordered pair of distinct commercial ids stored in
// lexicographic order.
type CompetitorPair [2]string

// NewCompetitorPair returns the canonical pair for a and b.
func NewCompetitorPair(a, b string) CompetitorPair {
	if b < a {
		a, b = b, a
	}
	return CompetitorPair{a, b}
}

// ProblemInstance is the record threaded through every generation stage.
// Stages only append or derive fields.
type ProblemInstance struct {
	RunID       string
	Name        string
	Seed        int64
	GeneratedAt time.Time

	Horizon     Horizon
	Breaks      []Break
	Commercials []Commercial
	Competitors []CompetitorPair

	// Price and Reach are breaks x MaxPosition tables.
	Price Table
	Reach Table
}

// MinCommercialDuration returns the shortest commercial duration, or 0 when
// the roster is empty.
func (p *ProblemInstance) MinCommercialDuration() int {
	shortest := 0
	for i, c := range p.Commercials {
		if i == 0 || c.Duration < shortest {
			shortest = c.Duration
		}
	}
	return shortest
}

// SlotCount returns how many shortest commercials fit into break i.
func (p *ProblemInstance) SlotCount(i int) int {
	shortest := p.MinCommercialDuration()
	if shortest <= 0 {
		return 0
	}
	return p.Breaks[i].Duration / shortest
}

// MaxPosition is the largest SlotCount over all breaks.
func (p *ProblemInstance) MaxPosition() int {
	widest := 0
	for i := range p.Breaks {
		if n := p.SlotCount(i); n > widest {
			widest = n
		}
	}
	return widest
}

// UsableRange is the window commercials may be released and due in: from the
// first break start to the last break end, or the whole horizon when there
// are no breaks.
func (p *ProblemInstance) UsableRange() (Timestamp, Timestamp) {
	if len(p.Breaks) == 0 {
		return p.Horizon.Start, p.Horizon.End
	}
	return p.Breaks[0].Start, p.Breaks[len(p.Breaks)-1].End
}

// CommercialIDs lists the roster ids in order.
func (p *ProblemInstance) CommercialIDs() []string {
	ids := make([]string, len(p.Commercials))
	for i, c := range p.Commercials {
		ids[i] = c.ID
	}
	return ids
}
