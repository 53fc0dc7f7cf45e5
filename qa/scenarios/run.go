package scenarios

import (
	"context"
	"fmt"

	"github.com/adbreak/breakgen/app"
	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/infra/logger"
)

// Outcome reports one generated instance.
type Outcome struct {
	Run    string
	Result *app.Result
}

// Run executes every run of m with svc and verifies each instance. It stops
// at the first failure.
func Run(ctx context.Context, m *Manifest, svc *app.Service) ([]Outcome, error) {
	log := logger.New("scenarios")
	var out []Outcome
	for _, r := range m.Runs {
		cfg, err := config.Load(m.ConfigPath(r))
		if err != nil {
			return out, fmt.Errorf("run %s: %w", r.Name, err)
		}
		if m.OutputDir != "" {
			cfg.Output.Dir = m.OutputDir
		}
		base := cfg.Name
		for i := 0; i < r.Count; i++ {
			cfg.Name = instanceName(base, r.Name, i, r.Count)
			var seed *int64
			if r.Seed != nil {
				s := *r.Seed + int64(i)
				seed = &s
			}
			res, err := svc.Generate(ctx, cfg, seed)
			if err != nil {
				return out, fmt.Errorf("run %s instance %d: %w", r.Name, i, err)
			}
			if err := Verify(res.Instance); err != nil {
				return out, fmt.Errorf("run %s instance %d: %w", r.Name, i, err)
			}
			if err := r.Expected.Check(res.Instance); err != nil {
				return out, fmt.Errorf("run %s instance %d: %w", r.Name, i, err)
			}
			out = append(out, Outcome{Run: r.Name, Result: res})
		}
		log.Infof("run %s: %d instances", r.Name, r.Count)
	}
	return out, nil
}

func instanceName(base, run string, i, count int) string {
	name := base
	if run != "" {
		name += "_" + run
	}
	if count > 1 {
		name = fmt.Sprintf("%s_%d", name, i)
	}
	return name
}
