package generator

import (
	"fmt"

	"github.com/adbreak/breakgen/core/model"
)

// maxBreakAttempts bounds redraws of a layout that overruns the horizon.
const maxBreakAttempts = 100

// breaks draws a break count and per-break durations, then lays the breaks
// end to end from the horizon start. Layouts longer than the horizon are
// redrawn.
func (g *Generator) breaks(inst *model.ProblemInstance) (stageStats, error) {
	span := inst.Horizon.Seconds()
	for attempt := 1; attempt <= maxBreakAttempts; attempt++ {
		count := g.choice(g.cfg.BreakCount)
		durations := make([]int, count)
		total := 0
		for i := range durations {
			durations[i] = g.choice(g.cfg.BreakDuration)
			total += durations[i]
		}
		if total > span {
			continue
		}
		out := make([]model.Break, count)
		cursor := inst.Horizon.Start
		for i, d := range durations {
			out[i] = model.Break{Duration: d, Start: cursor, End: cursor.Add(d)}
			cursor = out[i].End
		}
		inst.Breaks = out
		g.log.Debugf("laid out %d breaks covering %ds of %ds", count, total, span)
		return stageStats{attempts: attempt}, nil
	}
	return stageStats{attempts: maxBreakAttempts}, &ExhaustedError{
		Stage:    StageBreaks,
		Attempts: maxBreakAttempts,
		Reason:   fmt.Sprintf("no layout fits the %ds horizon", span),
	}
}
