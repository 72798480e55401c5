package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wordmatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		id, err := st.InsertRound(ctx, model.RoundRecord{
			UnitID:    "animals",
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
			Total:     5,
			Mistakes:  1,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Unit: "animals", Last: 2})
	require.NoError(t, err)
	require.Len(t, report.Rounds, 2)
	assert.Equal(t, ids[1], report.Rounds[0].ID)
	assert.Equal(t, ids[2], report.Rounds[1].ID)
	assert.Equal(t, map[string]int{"animals": 2}, report.Units)
}
