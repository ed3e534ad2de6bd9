// Package recorder persists periodic index snapshots so the dashboard can
// chart how the benchmarks drifted between visits.
package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
)

// SQLiteStore keeps index snapshots in a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	mu  sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads do not block scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("snapshot store opened", logger.String("path", path))
	return s, nil
}

// Init creates the snapshot table and its index if missing.
func (s *SQLiteStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS index_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			idx_name       TEXT NOT NULL,
			value          REAL NOT NULL,
			change         REAL NOT NULL,
			change_percent REAL NOT NULL,
			taken_at       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_name_ts ON index_snapshots(idx_name, taken_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Save appends snapshots in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snaps []models.IndexSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, snap := range snaps {
		if _, err := tx.ExecContext(ctx, `INSERT INTO index_snapshots
			(idx_name, value, change, change_percent, taken_at)
			VALUES (?,?,?,?,?)`,
			snap.Index, snap.Value, snap.Change, snap.ChangePercent, snap.TakenAt.Unix(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Query returns snapshots newest first, filtered by the query fields.
func (s *SQLiteStore) Query(ctx context.Context, q repository.SnapshotQuery) ([]models.IndexSnapshot, error) {
	var (
		where []string
		args  []any
	)
	if q.Index != "" {
		where = append(where, "idx_name = ?")
		args = append(args, q.Index)
	}
	if !q.From.IsZero() {
		where = append(where, "taken_at >= ?")
		args = append(args, q.From.Unix())
	}
	if !q.To.IsZero() {
		where = append(where, "taken_at <= ?")
		args = append(args, q.To.Unix())
	}

	stmt := "SELECT id, idx_name, value, change, change_percent, taken_at FROM index_snapshots"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY taken_at DESC, id DESC"
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []models.IndexSnapshot
	for rows.Next() {
		var (
			snap models.IndexSnapshot
			ts   int64
		)
		if err := rows.Scan(&snap.ID, &snap.Index, &snap.Value, &snap.Change, &snap.ChangePercent, &ts); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.TakenAt = time.Unix(ts, 0).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.log.Info("closing snapshot store")
	return s.db.Close()
}
