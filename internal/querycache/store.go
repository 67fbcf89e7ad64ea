// Package querycache persists the Query Layer's entity_class and
// relation_type indices to an embedded sqlite database, so a long-running
// CLI session can reopen a prior graph's indices without replaying the
// whole pipeline. It is populated from, never authoritative over, the
// in-memory query.Index.
package querycache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a sqlite-backed mirror of the Query Layer's indices.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if absent) the sqlite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("querycache: create directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("querycache: connect: %w", err)
	}
	db.Exec("PRAGMA journal_mode = WAL")

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("querycache: init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run_versions (
		run_id TEXT PRIMARY KEY,
		rtl_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS class_index (
		run_id TEXT NOT NULL,
		entity_class TEXT NOT NULL,
		node_id TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES run_versions(run_id)
	);
	CREATE INDEX IF NOT EXISTS idx_class_index_lookup ON class_index(run_id, entity_class);

	CREATE TABLE IF NOT EXISTS relation_index (
		run_id TEXT NOT NULL,
		relation_type TEXT NOT NULL,
		edge_id TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES run_versions(run_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relation_index_lookup ON relation_index(run_id, relation_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records runID/rtlHash and replaces any previously persisted
// class/relation index rows for that run.
func (s *Store) SaveRun(ctx context.Context, runID, rtlHash string, byClass map[string][]string, byRelation map[string][]string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO run_versions (run_id, rtl_hash) VALUES (?, ?)`, runID, rtlHash); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM class_index WHERE run_id = ?`, runID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM relation_index WHERE run_id = ?`, runID); err != nil {
		return err
	}

	for class, ids := range byClass {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO class_index (run_id, entity_class, node_id) VALUES (?, ?, ?)`, runID, class, id); err != nil {
				return err
			}
		}
	}
	for rel, ids := range byRelation {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO relation_index (run_id, relation_type, edge_id) VALUES (?, ?, ?)`, runID, rel, id); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// NodesByClass returns the persisted node ids for (runID, entityClass).
func (s *Store) NodesByClass(ctx context.Context, runID, entityClass string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `SELECT node_id FROM class_index WHERE run_id = ? AND entity_class = ?`, runID, entityClass)
	return ids, err
}

// EdgesByRelation returns the persisted edge ids for (runID, relationType).
func (s *Store) EdgesByRelation(ctx context.Context, runID, relationType string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `SELECT edge_id FROM relation_index WHERE run_id = ? AND relation_type = ?`, runID, relationType)
	return ids, err
}

// HasRun reports whether runID has a persisted index.
func (s *Store) HasRun(ctx context.Context, runID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM run_versions WHERE run_id = ?`, runID)
	return count > 0, err
}
