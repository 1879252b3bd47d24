// Package storage keeps a ledger of finished rounds for the current process.
// Uses the pure-Go modernc.org/sqlite driver with an in-memory database, so
// nothing outlives the process (or the SSH connection) that opened it.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flappy-neural/internal/game"
)

// Ledger records round summaries in an in-memory SQLite database.
type Ledger struct {
	db *sql.DB
}

// Round is one recorded round.
type Round struct {
	ID         int64
	Mode       string
	Round      int
	Best       int
	Actors     int
	Ticks      int
	Longest    time.Duration
	Speed      float64
	FinishedAt time.Time
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	Rounds     int
	BestScore  int
	AvgScore   float64
	TotalTicks int64
	Longest    time.Duration
}

// Open creates a fresh in-memory ledger and runs migrations.
func Open() (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return l, nil
}

// migrate creates the schema.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			round INTEGER NOT NULL,
			best INTEGER NOT NULL,
			actors INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			longest_ns INTEGER NOT NULL,
			speed REAL NOT NULL,
			finished_ns INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(mode, best DESC);
	`

	_, err := l.db.Exec(schema)
	return err
}

// Close closes the database connection. The ledger is gone afterwards.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// RecordRound stores a finished round.
// Returns the ID of the inserted record.
func (l *Ledger) RecordRound(rs game.RoundSummary) (int64, error) {
	result, err := l.db.Exec(
		`INSERT INTO rounds (mode, round, best, actors, ticks, longest_ns, speed, finished_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.Mode, rs.Round, rs.Best, rs.Actors, rs.Ticks,
		int64(rs.Longest), rs.Speed, rs.Finished.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Recent returns the latest rounds of a mode, newest first.
// An empty mode matches every mode.
func (l *Ledger) Recent(mode string, limit int) ([]Round, error) {
	return l.query(`ORDER BY id DESC`, mode, limit)
}

// Top returns a mode's best rounds by score, then by longest lifetime.
// An empty mode matches every mode.
func (l *Ledger) Top(mode string, limit int) ([]Round, error) {
	return l.query(`ORDER BY best DESC, longest_ns DESC, id ASC`, mode, limit)
}

func (l *Ledger) query(order, mode string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.Query(
		`SELECT id, mode, round, best, actors, ticks, longest_ns, speed, finished_ns
		 FROM rounds
		 WHERE ? = '' OR mode = ?
		 `+order+`
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var longest, finished int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.Round, &r.Best, &r.Actors, &r.Ticks, &longest, &r.Speed, &finished); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Longest = time.Duration(longest)
		r.FinishedAt = time.Unix(0, finished)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}

// BestScore returns the highest score recorded for a mode.
// Returns 0 if no rounds exist.
func (l *Ledger) BestScore(mode string) (int, error) {
	var best sql.NullInt64
	err := l.db.QueryRow(
		"SELECT MAX(best) FROM rounds WHERE mode = ?",
		mode,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats retrieves aggregated statistics for a mode.
func (l *Ledger) Stats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var longest int64
	err := l.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(best), 0), COALESCE(AVG(best), 0),
		        COALESCE(SUM(ticks), 0), COALESCE(MAX(longest_ns), 0)
		 FROM rounds WHERE mode = ?`,
		mode,
	).Scan(&stats.Rounds, &stats.BestScore, &stats.AvgScore, &stats.TotalTicks, &longest)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.Longest = time.Duration(longest)

	return stats, nil
}
