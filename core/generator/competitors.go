package generator

import (
	"fmt"

	"github.com/adbreak/breakgen/core/model"
)

// pairAttemptsFactor bounds pair sampling relative to the number of
// possible pairs.
const pairAttemptsFactor = 100

// competitors samples distinct unordered pairs of distinct commercial ids
// until the configured count is reached.
func (g *Generator) competitors(inst *model.ProblemInstance) (stageStats, error) {
	target := g.cfg.CompetitorsCount
	ids := inst.CommercialIDs()
	n := len(ids)
	possible := n * (n - 1) / 2
	if target > possible {
		return stageStats{}, &ExhaustedError{
			Stage:  StageCompetitors,
			Reason: fmt.Sprintf("%d pairs requested but %d commercials only allow %d", target, n, possible),
		}
	}

	limit := pairAttemptsFactor * (possible + 1)
	seen := make(map[model.CompetitorPair]struct{}, target)
	out := make([]model.CompetitorPair, 0, target)
	attempts := 0
	for len(out) < target {
		if attempts >= limit {
			return stageStats{attempts: attempts}, &ExhaustedError{
				Stage:    StageCompetitors,
				Attempts: attempts,
				Reason:   fmt.Sprintf("found %d of %d pairs", len(out), target),
			}
		}
		attempts++
		a, b := ids[g.rand.Intn(n)], ids[g.rand.Intn(n)]
		if a == b {
			continue
		}
		p := model.NewCompetitorPair(a, b)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	inst.Competitors = out
	g.log.Debugf("sampled %d competitor pairs in %d draws", len(out), attempts)
	return stageStats{attempts: attempts}, nil
}
