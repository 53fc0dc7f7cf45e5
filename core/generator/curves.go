package generator

import (
	"github.com/adbreak/breakgen/core/model"
)

// curves fills the price and reach tables. Row i covers break i; its first
// SlotCount(i) columns form a valley that starts at a random ceiling, drops
// by one per slot until the middle slot and climbs back by one per slot. The
// remaining columns stay zero. Values never fall below one so usable slots
// remain distinguishable from padding.
func (g *Generator) curves(inst *model.ProblemInstance) (stageStats, error) {
	width := inst.MaxPosition()
	price := model.NewTable(len(inst.Breaks), width)
	reach := model.NewTable(len(inst.Breaks), width)
	var stats stageStats
	for i := range inst.Breaks {
		slots := inst.SlotCount(i)
		priceCeil := g.choice(g.cfg.PriceRange)
		reachCeil := g.choice(g.cfg.ReachRange)
		stats.fallbacks += valley(price, i, slots, priceCeil)
		stats.fallbacks += valley(reach, i, slots, reachCeil)
	}
	inst.Price = price
	inst.Reach = reach
	g.log.Debugf("built %dx%d price and reach tables", len(inst.Breaks), width)
	return stats, nil
}

// valley writes the curve into row and returns how many slots were floored.
func valley(t model.Table, row, slots, ceiling int) int {
	floored := 0
	v := ceiling
	set := func(j int) {
		if v < 1 {
			floored++
			t.Set(row, j, 1)
			return
		}
		t.Set(row, j, float64(v))
	}
	half := slots / 2
	for j := 0; j < half; j++ {
		set(j)
		v--
	}
	for j := half; j < slots; j++ {
		set(j)
		v++
	}
	return floored
}
