package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordmatch/internal/model"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "K\u00e4se", NormalizeText("  Ka\u0308se "))
	assert.Equal(t, "to go", NormalizeText("to \t go"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestNormalizeDropsBlankPairs(t *testing.T) {
	units := Normalize([]model.SourceUnit{{
		ID:   " animals ",
		Name: "Animals",
		Pairs: []model.SourcePair{
			{EN: "Dog", DE: "Hund"},
			{EN: " ", DE: ""},
		},
	}})
	require.Len(t, units, 1)
	assert.Equal(t, "animals", units[0].ID)
	assert.Equal(t, []model.SourcePair{{EN: "Dog", DE: "Hund"}}, units[0].Pairs)
}

func TestValidate(t *testing.T) {
	good := model.SourceUnit{ID: "a", Name: "A", Pairs: []model.SourcePair{{EN: "Dog", DE: "Hund"}}}

	tests := []struct {
		name  string
		units []model.SourceUnit
		ok    bool
	}{
		{name: "valid", units: []model.SourceUnit{good}, ok: true},
		{name: "empty", units: nil},
		{name: "duplicate id", units: []model.SourceUnit{good, good}},
		{name: "reserved id", units: []model.SourceUnit{{ID: "review", Name: "R", Pairs: good.Pairs}}},
		{name: "colon in id", units: []model.SourceUnit{{ID: "a:b", Name: "A", Pairs: good.Pairs}}},
		{name: "no pairs", units: []model.SourceUnit{{ID: "a", Name: "A"}}},
		{name: "half pair", units: []model.SourceUnit{{ID: "a", Name: "A", Pairs: []model.SourcePair{{EN: "Dog"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.units)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "at-home", Slug("At home"))
	assert.Equal(t, "küche", Slug("Küche!"))
	assert.Equal(t, "unit-2", Slug("  Unit   #2 "))
}
