package generator

import (
	"time"

	"github.com/adbreak/breakgen/core/model"
)

// releaseCandidates is how many leading break starts may serve as release
// times.
const releaseCandidates = 2

// windows assigns each commercial a release and due time inside the usable
// range. The release time is drawn among the leading break starts that leave
// room for the required airtime; the due time adds a random share of twice
// the remaining slack and is clamped to the range end. When no candidate
// leaves enough room the window degrades to the whole usable range.
func (g *Generator) windows(inst *model.ProblemInstance) (stageStats, error) {
	first, last := inst.UsableRange()
	candidates := []model.Timestamp{first}
	if len(inst.Breaks) > 0 {
		candidates = candidates[:0]
		for i := 0; i < len(inst.Breaks) && i < releaseCandidates; i++ {
			candidates = append(candidates, inst.Breaks[i].Start)
		}
	}

	var stats stageStats
	feasible := make([]model.Timestamp, 0, len(candidates))
	for i := range inst.Commercials {
		c := &inst.Commercials[i]
		need := c.RequiredAirtime()
		feasible = feasible[:0]
		for _, t := range candidates {
			if !t.Add(need).After(last.Time) {
				feasible = append(feasible, t)
			}
		}
		stats.attempts += len(candidates)
		if len(feasible) == 0 {
			g.log.Warnf("commercial %s: %ds of airtime does not fit before %s, using full range", c.ID, need, last)
			c.ReleaseTime, c.DueTime = first, last
			stats.fallbacks++
			continue
		}
		release := feasible[g.rand.Intn(len(feasible))]
		earliest := release.Add(need)
		slack := last.Sub(earliest.Time)
		due := earliest.Time.Add(time.Duration(g.rand.Float64() * 2 * float64(slack)))
		if due.After(last.Time) {
			due = last.Time
		}
		c.ReleaseTime = release
		c.DueTime = model.At(due)
	}
	g.log.Debugf("assigned windows to %d commercials", len(inst.Commercials))
	return stats, nil
}
