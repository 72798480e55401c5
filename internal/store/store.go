// Package store handles SQLite persistence.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/verte-zerg/wordmatch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for mistakes and round history.
type Store struct {
	db *sqlx.DB
}

type mistakeRow struct {
	GlobalKey string `db:"global_key"`
	Count     int    `db:"count"`
}

type roundRow struct {
	ID        string `db:"id"`
	UnitID    string `db:"unit_id"`
	StartedAt string `db:"started_at"`
	EndedAt   string `db:"ended_at"`
	Total     int    `db:"total"`
	Mistakes  int    `db:"mistakes"`
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS mistakes (
			global_key TEXT PRIMARY KEY,
			count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			unit_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			total INTEGER NOT NULL,
			mistakes INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadMistakes returns every persisted mistake count keyed by global key.
func (s *Store) LoadMistakes(ctx context.Context) (map[string]int, error) {
	var rows []mistakeRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT global_key, count FROM mistakes`); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.GlobalKey] = r.Count
	}
	return out, nil
}

// ReplaceMistakes overwrites the persisted mistakes with counts. Non-positive
// counts are not stored.
func (s *Store) ReplaceMistakes(ctx context.Context, counts map[string]int) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM mistakes`); err != nil {
		return err
	}
	stmt, err := tx.PrepareNamedContext(ctx, `INSERT INTO mistakes (global_key, count) VALUES (:global_key, :count)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for gk, n := range counts {
		if n <= 0 {
			continue
		}
		if _, err = stmt.ExecContext(ctx, mistakeRow{GlobalKey: gk, Count: n}); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearMistakes removes every persisted mistake.
func (s *Store) ClearMistakes(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM mistakes`)
	return err
}

// InsertRound stores a completed round. A missing id is generated.
func (s *Store) InsertRound(ctx context.Context, rec model.RoundRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := roundRow{
		ID:        rec.ID,
		UnitID:    rec.UnitID,
		StartedAt: rec.StartedAt.UTC().Format(time.RFC3339Nano),
		EndedAt:   rec.EndedAt.UTC().Format(time.RFC3339Nano),
		Total:     rec.Total,
		Mistakes:  rec.Mistakes,
	}
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO rounds (id, unit_id, started_at, ended_at, total, mistakes)
		 VALUES (:id, :unit_id, :started_at, :ended_at, :total, :mistakes)`, row)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListRounds returns completed rounds filtered by the stats config, oldest first.
func (s *Store) ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Unit != "" {
		clauses = append(clauses, "unit_id = ?")
		args = append(args, cfg.Unit)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, unit_id, started_at, ended_at, total, mistakes
		FROM rounds
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))

	var rows []roundRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	rounds := make([]model.RoundRecord, 0, len(rows))
	for _, r := range rows {
		startedAt, err := time.Parse(time.RFC3339Nano, r.StartedAt)
		if err != nil {
			return nil, err
		}
		endedAt, err := time.Parse(time.RFC3339Nano, r.EndedAt)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, model.RoundRecord{
			ID:        r.ID,
			UnitID:    r.UnitID,
			StartedAt: startedAt,
			EndedAt:   endedAt,
			Total:     r.Total,
			Mistakes:  r.Mistakes,
		})
	}
	return rounds, nil
}
