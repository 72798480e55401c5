package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordmatch/internal/scoring"
)

func TestSelectWeakWordsSortsByCount(t *testing.T) {
	unit := testUnit(5)
	words := SelectWeakWords(unit, map[int]int{4: 1, 2: 3, 1: 1, 3: 0, 9: 7})
	require.Len(t, words, 3)
	assert.Equal(t, 2, words[0].Pair.LocalIndex)
	assert.Equal(t, 3, words[0].Count)
	assert.Equal(t, 1, words[1].Pair.LocalIndex)
	assert.Equal(t, 4, words[2].Pair.LocalIndex)
}

func TestBuildResultsOnlyWhenComplete(t *testing.T) {
	unit := testUnit(3)
	tallies := scoring.Tallies{
		MistakeTotal:   1,
		MistakeByPair:  map[int]int{1: 1, 2: 1},
		Confusions:     map[scoring.Confusion]int{{Left: 1, Right: 2}: 1},
		ConfusionOrder: []scoring.Confusion{{Left: 1, Right: 2}},
	}

	_, ok := BuildResults(unit, 2, tallies)
	assert.False(t, ok)

	res, ok := BuildResults(unit, 3, tallies)
	require.True(t, ok)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Solved)
	assert.Equal(t, 1, res.Mistakes)
	require.Len(t, res.WeakWords, 2)
	require.Len(t, res.Confusions, 1)
	assert.Equal(t, "en1", res.Confusions[0].Left.Target)
	assert.Equal(t, "de2", res.Confusions[0].Right.Source)
}

func TestBuildResultsWithoutMistakes(t *testing.T) {
	res, ok := BuildResults(testUnit(2), 2, scoring.Tallies{})
	require.True(t, ok)
	assert.Empty(t, res.WeakWords)
	assert.Empty(t, res.Confusions)
}
