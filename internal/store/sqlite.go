package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS boards (
	position      INTEGER NOT NULL,
	board_id      TEXT    NOT NULL PRIMARY KEY,
	snapshot_json TEXT    NOT NULL,
	updated_at    INTEGER NOT NULL
)`

// SQLite stores one row per board, ordered by position.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens and migrates a board database.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLite) Load(ctx context.Context) ([]bingo.Snapshot, error) {
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT board_id, snapshot_json FROM boards ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var out []bingo.Snapshot
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		var snap bingo.Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("decode board %s: %w", id, err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return out, nil
}

func (s *SQLite) Save(ctx context.Context, boards []bingo.Snapshot) error {
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM boards`); err != nil {
		return fmt.Errorf("clear boards: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for i, snap := range boards {
		raw, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode board %s: %w", snap.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO boards (position, board_id, snapshot_json, updated_at) VALUES (?, ?, ?, ?)`,
			i, snap.ID, string(raw), now,
		); err != nil {
			return fmt.Errorf("insert board %s: %w", snap.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
