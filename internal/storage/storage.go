// Package storage persists generated lines to a local SQLite database.
// Each row mirrors the shared history schema
// (timestamp, app_version, game, method, seed, line) and can be exported to
// or imported from CSV in that column order. Draw history itself is never
// persisted; only generated lines are.
package storage

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/serc-ps/lottogen/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	id          TEXT PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	app_version TEXT NOT NULL DEFAULT '',
	game        TEXT NOT NULL,
	method      TEXT NOT NULL,
	seed        TEXT NOT NULL DEFAULT '',
	line        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_timestamp ON generations (timestamp);
`

// csvHeader is the column order shared with CSV exports and imports.
var csvHeader = []string{"timestamp", "app_version", "game", "method", "seed", "line"}

// Storage is a generation-history store backed by SQLite.
type Storage struct {
	db   *sql.DB
	path string
}

// DefaultDBPath returns the per-user history database location
// (~/.lottogen/history.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".lottogen", "history.db"), nil
}

// New opens (creating if needed) the history database at path. An empty path
// uses DefaultDBPath; ":memory:" yields an ephemeral store.
func New(path string) (*Storage, error) {
	if path == "" {
		var err error
		path, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Storage{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Append stores one batch of generation records in a single transaction.
// Records without an ID get one assigned.
func (s *Storage) Append(records []models.GenerationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO generations (id, timestamp, app_version, game, method, seed, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid generation record: %w", err)
		}
		_, err := stmt.Exec(r.ID, r.Timestamp.Format(time.RFC3339), r.AppVersion, r.Game, r.Method, r.Seed, r.Line)
		if err != nil {
			return fmt.Errorf("insert generation record: %w", err)
		}
	}
	return tx.Commit()
}

// Recent returns up to limit of the newest records, oldest first.
func (s *Storage) Recent(limit int) ([]models.GenerationRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, app_version, game, method, seed, line
		 FROM generations ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []models.GenerationRecord
	for rows.Next() {
		var r models.GenerationRecord
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.AppVersion, &r.Game, &r.Method, &r.Seed, &r.Line); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp %q: %w", ts, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	// Newest-first query for the LIMIT, oldest-first for display.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Storage) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history rows: %w", err)
	}
	return n, nil
}

// ExportCSV writes every record, oldest first, as CSV with the shared header.
func (s *Storage) ExportCSV(w io.Writer) error {
	rows, err := s.db.Query(
		`SELECT timestamp, app_version, game, method, seed, line
		 FROM generations ORDER BY timestamp, id`)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for rows.Next() {
		rec := make([]string, 6)
		ptrs := make([]any, 6)
		for i := range rec {
			ptrs[i] = &rec[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scan history row: %w", err)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate history rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads records in the shared CSV format (header required) and
// appends them. Returns the number of imported rows.
func (s *Storage) ImportCSV(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read CSV header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return 0, fmt.Errorf("unexpected CSV header: got %d columns, want %d", len(header), len(csvHeader))
	}

	var records []models.GenerationRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read CSV row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return 0, fmt.Errorf("parse CSV timestamp %q: %w", row[0], err)
		}
		records = append(records, models.GenerationRecord{
			ID:         uuid.New().String(),
			Timestamp:  ts,
			AppVersion: row[1],
			Game:       row[2],
			Method:     row[3],
			Seed:       row[4],
			Line:       row[5],
		})
	}
	if err := s.Append(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
