// Package generator produces randomized column orders.
package generator

import (
	"math/rand"
	"time"
)

// Generator shuffles pair ids.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a Fisher-Yates permutation of ids. The input is not modified.
func (g *Generator) Shuffle(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
