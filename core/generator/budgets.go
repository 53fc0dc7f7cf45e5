package generator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/adbreak/breakgen/core/model"
)

// budgets derives each commercial's budget and required reach from the
// positive-entry means of the price and reach tables. A fair coin picks the
// adjustment rule; negative results are floored at zero.
func (g *Generator) budgets(inst *model.ProblemInstance) (stageStats, error) {
	priceMean := positiveMean(inst.Price)
	reachMean := positiveMean(inst.Reach)
	var stats stageStats
	for i := range inst.Commercials {
		c := &inst.Commercials[i]
		plays := c.ExpectedPlays()
		basePrice := float64(plays * c.Duration * priceMean)
		baseReach := float64(plays * c.Duration * reachMean)
		budgetPct := float64(g.choice(g.cfg.BudgetChance))
		reachPct := float64(g.choice(g.cfg.ReachChance))

		var budget, reach float64
		if g.rand.Intn(2) == 0 {
			budget = basePrice + budgetPct/100*basePrice
			reach = baseReach - reachPct/100*baseReach
		} else {
			budget = basePrice - (budgetPct-10)/100*basePrice
			reach = baseReach - (reachPct-10)/100*baseReach
		}
		c.Budget = int(budget)
		c.RequiredReach = int(reach)
		if c.Budget < 0 {
			g.log.Warnf("commercial %s: budget %d floored at zero", c.ID, c.Budget)
			c.Budget = 0
			stats.fallbacks++
		}
		if c.RequiredReach < 0 {
			g.log.Warnf("commercial %s: required reach %d floored at zero", c.ID, c.RequiredReach)
			c.RequiredReach = 0
			stats.fallbacks++
		}
	}
	g.log.Debugf("budgets derived with price mean %d and reach mean %d", priceMean, reachMean)
	return stats, nil
}

// positiveMean is the truncated mean of the strictly positive entries plus
// one, so an empty table yields one rather than zero.
func positiveMean(t model.Table) int {
	pos := t.Positive()
	if len(pos) == 0 {
		return 1
	}
	return int(stat.Mean(pos, nil)) + 1
}
