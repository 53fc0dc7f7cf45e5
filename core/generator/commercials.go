package generator

import (
	"fmt"

	"github.com/adbreak/breakgen/core/model"
)

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idMaxNum  = 500
	// idAttemptsPerDuration scales the per-commercial id attempt cap by the
	// size of the duration candidate set.
	idAttemptsPerDuration = 50
	minIDAttempts         = 50
)

// commercials builds the roster. Ids are resampled on collision up to a cap.
// A commercial drawn with min plays above max plays has its bounds swapped so
// MinPlays <= MaxPlays always holds.
func (g *Generator) commercials(inst *model.ProblemInstance) (stageStats, error) {
	count := g.choice(g.cfg.CommercialCount)
	limit := idAttemptsPerDuration * len(g.cfg.CommercialDuration)
	if limit < minIDAttempts {
		limit = minIDAttempts
	}
	if space := len(idLetters) * idMaxNum; count > space {
		return stageStats{}, &ExhaustedError{
			Stage:  StageCommercials,
			Reason: fmt.Sprintf("%d commercials requested but only %d distinct ids exist", count, space),
		}
	}

	var stats stageStats
	seen := make(map[string]struct{}, count)
	out := make([]model.Commercial, 0, count)
	for i := 0; i < count; i++ {
		id, attempts, ok := g.uniqueID(seen, limit)
		stats.attempts += attempts
		if !ok {
			return stats, &ExhaustedError{
				Stage:    StageCommercials,
				Attempts: attempts,
				Reason:   fmt.Sprintf("no unique id for commercial %d", i),
			}
		}
		seen[id] = struct{}{}
		c := model.Commercial{
			ID:       id,
			Duration: g.choice(g.cfg.CommercialDuration),
			MaxPlays: g.choice(g.cfg.CommercialMaximumPlay),
			MinPlays: g.choice(g.cfg.CommercialMinimumPlay),
			Penalty:  g.choice(g.cfg.Penalty),
		}
		if c.MinPlays > c.MaxPlays {
			g.log.Warnf("commercial %s: min plays %d above max plays %d, swapping", c.ID, c.MinPlays, c.MaxPlays)
			c.MinPlays, c.MaxPlays = c.MaxPlays, c.MinPlays
			stats.fallbacks++
		}
		out = append(out, c)
	}
	inst.Commercials = out
	g.log.Debugf("generated %d commercials", len(out))
	return stats, nil
}

func (g *Generator) uniqueID(seen map[string]struct{}, limit int) (string, int, bool) {
	for attempt := 1; attempt <= limit; attempt++ {
		id := fmt.Sprintf("%c-%d", idLetters[g.rand.Intn(len(idLetters))], 1+g.rand.Intn(idMaxNum))
		if _, dup := seen[id]; !dup {
			return id, attempt, true
		}
	}
	return "", limit, false
}
