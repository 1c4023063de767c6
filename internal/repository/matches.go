package repository

import (
	"context"
	"fmt"
	"time"
)

// MatchRecord summarizes one finished match for archival.
type MatchRecord struct {
	ID          string
	Seed        int64
	Winner      int
	Turns       int
	Actions     int
	Checksum    string
	Duration    time.Duration
	CompletedAt time.Time
}

// MatchRepository stores finished-match records.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the given database.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// EnsureSchema creates the match_results table if it does not exist.
func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_results (
			id           TEXT PRIMARY KEY,
			seed         BIGINT NOT NULL,
			winner       INT NOT NULL,
			turns        INT NOT NULL,
			actions      INT NOT NULL,
			checksum     TEXT NOT NULL,
			duration_ms  BIGINT NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure match_results schema: %w", err)
	}
	return nil
}

// Save inserts one match record.
func (r *MatchRepository) Save(ctx context.Context, rec MatchRecord) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO match_results (id, seed, winner, turns, actions, checksum, duration_ms, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Seed, rec.Winner, rec.Turns, rec.Actions, rec.Checksum,
		rec.Duration.Milliseconds(), rec.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert match record %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns the most recently completed match records.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, seed, winner, turns, actions, checksum, duration_ms, completed_at
		FROM match_results
		ORDER BY completed_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query match records: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.Winner, &rec.Turns, &rec.Actions,
			&rec.Checksum, &durationMS, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan match record: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}
