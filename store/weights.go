package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/montrey/jump/history"
)

type weightRow struct {
	Path   string  `db:"path"`
	Weight float64 `db:"weight"`
}

// Load reads every stored path in the order it was first recorded.
func Load(db *sqlx.DB) (*history.PathStore, error) {
	var rows []weightRow
	if err := db.Select(&rows, `SELECT path, weight FROM weights ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}

	s := history.NewPathStore()
	for _, r := range rows {
		s.Set(r.Path, r.Weight)
	}
	return s, nil
}

// Save replaces the stored weights with the contents of s in one transaction.
// Paths already on disk keep their position; paths missing from s are removed.
func Save(db *sqlx.DB, s *history.PathStore) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	var existing []string
	if err := tx.Select(&existing, `SELECT path FROM weights`); err != nil {
		return fmt.Errorf("failed to read stored paths: %w", err)
	}

	del, err := tx.Preparex(`DELETE FROM weights WHERE path = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete: %w", err)
	}
	defer del.Close()

	for _, path := range existing {
		if _, ok := s.Get(path); ok {
			continue
		}
		if _, err := del.Exec(path); err != nil {
			return fmt.Errorf("failed to delete %q: %w", path, err)
		}
	}

	// Upsert logic: keep the row id, touch updated_at only on change
	upsert, err := tx.Preparex(`
		INSERT INTO weights (path, weight) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET
			weight = excluded.weight,
			updated_at = CASE
				WHEN weights.weight != excluded.weight THEN CURRENT_TIMESTAMP
				ELSE weights.updated_at
			END
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer upsert.Close()

	for _, e := range s.Entries() {
		if _, err := upsert.Exec(e.Path, e.Weight); err != nil {
			return fmt.Errorf("failed to save %q: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit weights: %w", err)
	}
	return nil
}
