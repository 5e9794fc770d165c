package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/wallcheck/pkg/report"
)

// SQLiteStore keeps reports in a single-file SQLite database. The full
// report is stored as JSON next to the columns used for listing.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initSQLite(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			blueprint_hash TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			entity_count INTEGER NOT NULL,
			unsafe_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			body TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS reports_created_at ON reports(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS reports_blueprint_hash ON reports(blueprint_hash);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init sqlite: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, r *report.Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports (id, blueprint_hash, label, entity_count, unsafe_count, created_at, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.BlueprintHash, r.Label, r.EntityCount, len(r.Unsafe), r.CreatedAt.UnixNano(), string(body),
	)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*report.Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return report.DecodeJSON([]byte(body))
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM reports ORDER BY created_at DESC, id LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*report.Report
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		r, err := report.DecodeJSON([]byte(body))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes reports created before cutoff and returns how many were
// removed.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
