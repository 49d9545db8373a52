package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveSample(ctx context.Context, sample Sample) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO samples (run_id, idx, binary_string, symbols, expression, value, target, fitness, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, idx) DO UPDATE SET
			binary_string = excluded.binary_string,
			symbols = excluded.symbols,
			expression = excluded.expression,
			value = excluded.value,
			target = excluded.target,
			fitness = excluded.fitness,
			created_at = excluded.created_at
	`,
		sample.RunID,
		sample.Index,
		sample.Binary,
		sample.Symbols,
		sample.Expression,
		formatFloat(sample.Value),
		formatFloat(sample.Target),
		formatFloat(sample.Fitness),
		sample.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) ListSamples(ctx context.Context, runID string) ([]Sample, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, idx, binary_string, symbols, expression, value, target, fitness, created_at
		FROM samples
		WHERE run_id = ?
		ORDER BY idx
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var value, target, fitness, createdAt string
		if err := rows.Scan(
			&sample.RunID,
			&sample.Index,
			&sample.Binary,
			&sample.Symbols,
			&sample.Expression,
			&value,
			&target,
			&fitness,
			&createdAt,
		); err != nil {
			return nil, err
		}

		if sample.Value, err = strconv.ParseFloat(value, 64); err != nil {
			return nil, err
		}
		if sample.Target, err = strconv.ParseFloat(target, 64); err != nil {
			return nil, err
		}
		if sample.Fitness, err = strconv.ParseFloat(fitness, 64); err != nil {
			return nil, err
		}
		if sample.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}

		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

// Floats are stored as text: a REAL column turns NaN into NULL
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS samples (
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			binary_string TEXT NOT NULL,
			symbols TEXT NOT NULL,
			expression TEXT NOT NULL,
			value TEXT NOT NULL,
			target TEXT NOT NULL,
			fitness TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (run_id, idx)
		);
	`)
	return err
}
