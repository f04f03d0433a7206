// Package database persists processed batches: batch metadata plus the
// full-fidelity part records, scores included, for audit and re-export.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/pipeline"
)

// BatchStore is a sqlite-backed store for batch results.
type BatchStore struct {
	conn *sql.DB
}

// BatchSummary is the stored per-batch metadata.
type BatchSummary struct {
	ID          string    `json:"id"`
	Strategy    string    `json:"strategy"`
	Template    string    `json:"template"`
	Supplier    string    `json:"supplier"`
	Threshold   int       `json:"threshold"`
	Total       int       `json:"total"`
	Accepted    int       `json:"accepted"`
	NeedsReview int       `json:"needs_review"`
	CreatedAt   time.Time `json:"created_at"`
}

// OpenBatchStore opens (or creates) the store at path and ensures schema.
func OpenBatchStore(path string) (*BatchStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &BatchStore{conn: conn}
	if err := store.createTables(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying connection.
func (s *BatchStore) Close() error {
	return s.conn.Close()
}

func (s *BatchStore) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		template TEXT NOT NULL,
		supplier TEXT NOT NULL DEFAULT '',
		threshold INTEGER NOT NULL,
		total INTEGER NOT NULL,
		accepted INTEGER NOT NULL,
		needs_review INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS part_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL REFERENCES batches(id),
		row_index INTEGER NOT NULL,
		manufacturer TEXT NOT NULL,
		model_number TEXT NOT NULL,
		cost REAL NOT NULL,
		folder_1 TEXT NOT NULL,
		folder_2 TEXT NOT NULL,
		folder_3 TEXT NOT NULL,
		standard_name TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		labor_hours REAL NOT NULL,
		confidence_score INTEGER NOT NULL,
		enrichment_status TEXT NOT NULL,
		degraded_reason TEXT NOT NULL DEFAULT '',
		raw_input TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_part_records_batch ON part_records(batch_id, row_index);
	CREATE INDEX IF NOT EXISTS idx_batches_created ON batches(created_at);
	`

	if _, err := s.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// SaveResult stores a completed batch and all its records in one
// transaction.
func (s *BatchStore) SaveResult(result *pipeline.Result, template, supplier string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO batches (id, strategy, template, supplier, threshold, total, accepted, needs_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.BatchID, result.Strategy, template, supplier, result.Threshold,
		len(result.Records), len(result.Accepted), len(result.NeedsReview),
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO part_records (
			batch_id, row_index, manufacturer, model_number, cost,
			folder_1, folder_2, folder_3, standard_name, description,
			category, labor_hours, confidence_score, enrichment_status,
			degraded_reason, raw_input
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range result.Records {
		_, err := stmt.Exec(
			result.BatchID, i, r.Manufacturer, r.ModelNumber, r.Cost,
			r.Folder1, r.Folder2, r.Folder3, r.StandardName, r.Description,
			r.Category, r.LaborHours, r.ConfidenceScore, string(r.EnrichmentStatus),
			string(r.DegradedReason), r.RawInput,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetBatch returns the stored metadata for one batch.
func (s *BatchStore) GetBatch(id string) (*BatchSummary, error) {
	row := s.conn.QueryRow(`
		SELECT id, strategy, template, supplier, threshold, total, accepted, needs_review, created_at
		FROM batches WHERE id = ?`, id)

	var b BatchSummary
	err := row.Scan(&b.ID, &b.Strategy, &b.Template, &b.Supplier, &b.Threshold,
		&b.Total, &b.Accepted, &b.NeedsReview, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}
	return &b, nil
}

// ListBatches returns stored batches, newest first.
func (s *BatchStore) ListBatches(limit int) ([]BatchSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(`
		SELECT id, strategy, template, supplier, threshold, total, accepted, needs_review, created_at
		FROM batches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var b BatchSummary
		if err := rows.Scan(&b.ID, &b.Strategy, &b.Template, &b.Supplier, &b.Threshold,
			&b.Total, &b.Accepted, &b.NeedsReview, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetRecords returns a batch's records in original row order.
func (s *BatchStore) GetRecords(batchID string) ([]enrichment.PartRecord, error) {
	rows, err := s.conn.Query(`
		SELECT manufacturer, model_number, cost, folder_1, folder_2, folder_3,
		       standard_name, description, category, labor_hours,
		       confidence_score, enrichment_status, degraded_reason, raw_input
		FROM part_records WHERE batch_id = ? ORDER BY row_index`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	var out []enrichment.PartRecord
	for rows.Next() {
		var r enrichment.PartRecord
		var status, reason string
		if err := rows.Scan(&r.Manufacturer, &r.ModelNumber, &r.Cost,
			&r.Folder1, &r.Folder2, &r.Folder3, &r.StandardName, &r.Description,
			&r.Category, &r.LaborHours, &r.ConfidenceScore, &status, &reason,
			&r.RawInput); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.EnrichmentStatus = enrichment.EnrichmentStatus(status)
		r.DegradedReason = enrichment.DegradedReason(reason)
		out = append(out, r)
	}
	return out, rows.Err()
}
