package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"apicov/internal/compare"
	"apicov/internal/output"
)

// RunSummary is one row of run history without the full result blob.
type RunSummary struct {
	ID              string  `json:"id"`
	CreatedAt       string  `json:"createdAt"`
	ReferencePath   string  `json:"referencePath"`
	PolyfillPath    string  `json:"polyfillPath"`
	Strict          bool    `json:"strict"`
	Total           int     `json:"total"`
	Covered         int     `json:"covered"`
	Partial         int     `json:"partial"`
	Missing         int     `json:"missing"`
	PercentComplete float64 `json:"percentComplete"`
}

// SaveRun persists a comparison result and returns the new run id. The full
// result is stored as a gzip-compressed JSON blob alongside queryable summary
// columns.
func (db *DB) SaveRun(result *compare.Result) (string, error) {
	encoded, err := output.DeterministicEncode(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(encoded); err != nil {
		return "", fmt.Errorf("failed to compress result: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to compress result: %w", err)
	}

	id := uuid.NewString()
	createdAt := result.Timestamp
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	err = db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (id, created_at, reference_path, polyfill_path, strict,
			                  total, covered, partial, missing, percent_complete, result)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, createdAt, result.ReferencePath, result.PolyfillPath,
			result.StrictSignatures,
			result.Overall.Total, result.Overall.Covered,
			result.Overall.Partial, result.Overall.Missing,
			result.Overall.PercentComplete,
			buf.Bytes())
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	return id, nil
}

// ListRuns returns run summaries, newest first. limit <= 0 means all runs.
func (db *DB) ListRuns(limit int) ([]RunSummary, error) {
	query := `
		SELECT id, created_at, reference_path, polyfill_path, strict,
		       total, covered, partial, missing, percent_complete
		FROM runs
		ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.ReferencePath,
			&run.PolyfillPath, &run.Strict, &run.Total, &run.Covered,
			&run.Partial, &run.Missing, &run.PercentComplete); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads the full comparison result of one run.
func (db *DB) GetRun(id string) (*compare.Result, error) {
	var blob []byte
	err := db.conn.QueryRow(`SELECT result FROM runs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress run: %w", err)
	}
	defer gz.Close()

	decoded, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress run: %w", err)
	}

	var result compare.Result
	if err := json.Unmarshal(decoded, &result); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &result, nil
}
