// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extraction runs and their content items in SQLite
// so items can be listed by deliverable, source, or confidence and exported
// for the report assembler.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/logging"
	"github.com/pdiddy/health-report/pkg/types"
)

const (
	dbFile            = "health-report.db"
	defaultMaxResults = 50
)

// Store manages the item database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	log        *zap.Logger
	now        func() time.Time
}

// Open opens or creates the item database at cfg.Dir/health-report.db and
// creates the schema if it does not exist.
func Open(cfg types.StoreConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("store directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
		log:        logging.OrNop(logger),
		now:        time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			documents INTEGER NOT NULL,
			items INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source_file TEXT NOT NULL,
			content_type TEXT NOT NULL,
			ordinal_index INTEGER NOT NULL,
			title TEXT,
			body TEXT,
			selector_used TEXT,
			confidence REAL NOT NULL,
			dimension_code TEXT,
			impact_areas TEXT,
			visualization_data TEXT,
			target_deliverables TEXT,
			target_sections TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_run_id ON items(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_source_file ON items(source_file)`,
		`CREATE TABLE IF NOT EXISTS item_targets (
			item_rowid INTEGER NOT NULL REFERENCES items(rowid) ON DELETE CASCADE,
			deliverable TEXT NOT NULL,
			target_section TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_item_targets_deliverable ON item_targets(deliverable)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run describes one ingested extraction run.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Documents int       `json:"documents" yaml:"documents"`
	Items     int       `json:"items" yaml:"items"`
	Failed    int       `json:"failed" yaml:"failed"`
}

// Ingest stores every successful result as one new run. Results carrying
// an error are counted as failed and their items are not stored. The run
// is written in a single transaction.
func (s *Store) Ingest(ctx context.Context, results []types.ExtractionResult) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range results {
		if r.Error != "" {
			run.Failed++
			s.log.Warn("skipping failed extraction result",
				zap.String("source_file", string(r.SourceFile)),
				zap.String("error", r.Error))
			continue
		}
		run.Documents++
		run.Items += len(r.Items)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, documents, items, failed) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), run.Documents, run.Items, run.Failed,
	); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	itemStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (run_id, source_file, content_type, ordinal_index, title, body,
			selector_used, confidence, dimension_code, impact_areas, visualization_data,
			target_deliverables, target_sections)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing item insert: %w", err)
	}
	defer itemStmt.Close()

	targetStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO item_targets (item_rowid, deliverable, target_section) VALUES (?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing target insert: %w", err)
	}
	defer targetStmt.Close()

	for _, r := range results {
		if r.Error != "" {
			continue
		}
		for _, item := range r.Items {
			if err := insertItem(ctx, itemStmt, targetStmt, run.ID, item); err != nil {
				return Run{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}

	s.log.Info("run ingested",
		zap.String("run_id", run.ID),
		zap.Int("documents", run.Documents),
		zap.Int("items", run.Items),
		zap.Int("failed", run.Failed))
	return run, nil
}

func insertItem(ctx context.Context, itemStmt, targetStmt *sql.Stmt, runID string, item types.ContentItem) error {
	impact, err := json.Marshal(item.ImpactAreas)
	if err != nil {
		return fmt.Errorf("encoding impact areas: %w", err)
	}
	viz, err := json.Marshal(item.VisualizationData)
	if err != nil {
		return fmt.Errorf("encoding visualization data: %w", err)
	}
	deliverables, err := json.Marshal(item.TargetDeliverables)
	if err != nil {
		return fmt.Errorf("encoding deliverables: %w", err)
	}
	sections, err := json.Marshal(item.TargetSections)
	if err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}

	res, err := itemStmt.ExecContext(ctx,
		runID, string(item.SourceFile), item.ContentType, item.OrdinalIndex,
		item.Title, item.Body, item.SelectorUsed, item.ConfidenceScore,
		item.DimensionCode(), string(impact), string(viz),
		string(deliverables), string(sections),
	)
	if err != nil {
		return fmt.Errorf("inserting item %s/%d: %w", item.SourceFile, item.OrdinalIndex, err)
	}
	rowid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading item id: %w", err)
	}

	for _, d := range item.TargetDeliverables {
		if _, err := targetStmt.ExecContext(ctx, rowid, d, item.TargetSections[d]); err != nil {
			return fmt.Errorf("inserting target %s: %w", d, err)
		}
	}
	return nil
}

// Runs returns every run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, documents, items, failed FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.Documents, &r.Items, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run and its items.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}
