// Package store handles SQLite persistence of run history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordcsv/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			preset TEXT NOT NULL,
			seed INTEGER NOT NULL,
			corpus_dir TEXT NOT NULL,
			out_dir TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id INTEGER NOT NULL,
			path TEXT NOT NULL,
			target_length INTEGER NOT NULL,
			pool_size INTEGER NOT NULL,
			stopwords_in_pool INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			no_definition INTEGER NOT NULL,
			rejected INTEGER NOT NULL,
			PRIMARY KEY (run_id, path)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run and its file results.
func (s *Store) InsertRun(ctx context.Context, run model.RunSummary) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, preset, seed, corpus_dir, out_dir)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Preset,
		run.Seed,
		run.CorpusDir,
		run.OutDir,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(run.Files) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_files (run_id, path, target_length, pool_size, stopwords_in_pool, entries, no_definition, rejected)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, f := range run.Files {
			if _, err := stmt.ExecContext(ctx, id, f.Path, f.TargetLength, f.PoolSize, f.StopwordsInPool, f.Entries, f.NoDefinition, f.Rejected); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, with their files.
// A limit of zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	query := `SELECT id, started_at, ended_at, preset, seed, corpus_dir, out_dir
		FROM runs
		ORDER BY ended_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		var run model.RunSummary
		var startedAt, endedAt string
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.Preset, &run.Seed, &run.CorpusDir, &run.OutDir); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return runs, nil
	}

	ids := make([]int64, len(runs))
	for i, run := range runs {
		ids[i] = run.ID
	}
	files, err := s.ListFiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].Files = files[runs[i].ID]
	}
	return runs, nil
}

// ListFiles returns file results grouped by run id.
func (s *Store) ListFiles(ctx context.Context, runIDs []int64) (map[int64][]model.FileResult, error) {
	result := map[int64][]model.FileResult{}
	if len(runIDs) == 0 {
		return result, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT run_id, path, target_length, pool_size, stopwords_in_pool, entries, no_definition, rejected
		FROM run_files
		WHERE run_id IN (%s)
		ORDER BY run_id, target_length, path`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var runID int64
		var f model.FileResult
		if err := rows.Scan(&runID, &f.Path, &f.TargetLength, &f.PoolSize, &f.StopwordsInPool, &f.Entries, &f.NoDefinition, &f.Rejected); err != nil {
			return nil, err
		}
		result[runID] = append(result[runID], f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
