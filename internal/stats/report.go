package stats

import (
	"context"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Rounds []model.RoundRecord
	Units  map[string]int
}

// BuildReport loads completed rounds matching the config.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	units := map[string]int{}
	for _, r := range rounds {
		units[r.UnitID]++
	}
	return Report{Rounds: rounds, Units: units}, nil
}
