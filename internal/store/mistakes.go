package store

import (
	"context"
	"log/slog"
	"time"
)

const mistakeOpTimeout = 5 * time.Second

// Mistakes adapts a Store to the best-effort mistake store used by the game.
// Read failures yield an empty map and write failures are logged and dropped;
// the next successful write resyncs the table.
type Mistakes struct {
	st  *Store
	log *slog.Logger
}

// NewMistakes returns a mistake store backed by st.
func NewMistakes(st *Store, log *slog.Logger) *Mistakes {
	if log == nil {
		log = slog.Default()
	}
	return &Mistakes{st: st, log: log}
}

// Get returns the persisted mistake counts.
func (m *Mistakes) Get() map[string]int {
	ctx, cancel := context.WithTimeout(context.Background(), mistakeOpTimeout)
	defer cancel()
	counts, err := m.st.LoadMistakes(ctx)
	if err != nil {
		m.log.Warn("failed to load mistakes", "error", err)
		return map[string]int{}
	}
	return counts
}

// Set replaces the persisted mistake counts.
func (m *Mistakes) Set(counts map[string]int) {
	ctx, cancel := context.WithTimeout(context.Background(), mistakeOpTimeout)
	defer cancel()
	if err := m.st.ReplaceMistakes(ctx, counts); err != nil {
		m.log.Warn("failed to save mistakes", "error", err, "keys", len(counts))
	}
}

// MemoryMistakes is an in-process mistake store. Nothing survives the process.
type MemoryMistakes struct {
	data map[string]int
}

// NewMemoryMistakes returns an empty in-memory mistake store.
func NewMemoryMistakes() *MemoryMistakes {
	return &MemoryMistakes{data: map[string]int{}}
}

// Get returns a copy of the stored counts.
func (m *MemoryMistakes) Get() map[string]int {
	return copyCounts(m.data)
}

// Set replaces the stored counts.
func (m *MemoryMistakes) Set(counts map[string]int) {
	m.data = copyCounts(counts)
}

func copyCounts(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
