package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/scoring"
)

func TestTopConfusionsOrderAndCap(t *testing.T) {
	unit := testUnit(8)
	tallies := scoring.Tallies{Confusions: map[scoring.Confusion]int{}}
	add := func(l, r, n int) {
		c := scoring.Confusion{Left: l, Right: r}
		tallies.ConfusionOrder = append(tallies.ConfusionOrder, c)
		tallies.Confusions[c] = n
	}
	add(1, 2, 1)
	add(2, 1, 3)
	add(3, 4, 1)
	add(4, 5, 2)
	add(5, 6, 1)
	add(6, 7, 1)
	add(7, 8, 1)
	add(8, 9, 5) // stale right pair

	top := TopConfusions(unit, tallies, MaxConfusions)
	require.Len(t, top, MaxConfusions)
	got := make([][2]int, len(top))
	for i, e := range top {
		got[i] = [2]int{e.Left.LocalIndex, e.Right.LocalIndex}
	}
	assert.Equal(t, [][2]int{{2, 1}, {4, 5}, {1, 2}, {3, 4}, {5, 6}, {6, 7}}, got)
	assert.Equal(t, 3, top[0].Count)
	assert.Equal(t, "de2", top[0].Left.Source)
	assert.Equal(t, "de1", top[0].Right.Source)
}

func TestTopConfusionsEmpty(t *testing.T) {
	assert.Empty(t, TopConfusions(testUnit(2), scoring.Tallies{}, MaxConfusions))
	assert.Nil(t, TopConfusions(testUnit(2), scoring.Tallies{}, 0))
}

func testUnit(n int) model.Unit {
	u := model.Unit{ID: "u", Name: "U"}
	for i := 1; i <= n; i++ {
		u.Pairs = append(u.Pairs, model.Pair{
			LocalIndex: i,
			GlobalKey:  model.GlobalKey("u", i),
			Source:     "de" + string(rune('0'+i)),
			Target:     "en" + string(rune('0'+i)),
		})
	}
	return u
}
