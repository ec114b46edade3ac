package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// AppendSummary appends one summary record to the destination worksheet.
//
// The worksheet contract: the stored header row must exactly match the
// record's key order. When it does not (first write, or a template/category
// change widened the record), the header is rewritten before the value row
// is appended. There is no dedup key; appending the same document twice
// produces two rows.
func (s *Store) AppendSummary(rec model.SummaryRecord) error {
	keysJSON, err := json.Marshal(rec.Keys())
	if err != nil {
		return fmt.Errorf("failed to encode summary keys: %w", err)
	}
	valuesJSON, err := json.Marshal(rec.Values())
	if err != nil {
		return fmt.Errorf("failed to encode summary values: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var storedJSON string
	err = tx.QueryRow(`SELECT keys_json FROM summary_header WHERE id = 1`).Scan(&storedJSON)
	switch {
	case err == sql.ErrNoRows:
		storedJSON = ""
	case err != nil:
		return fmt.Errorf("failed to read summary header: %w", err)
	}

	if !sameHeader(storedJSON, rec.Keys()) {
		_, err = tx.Exec(`
			INSERT INTO summary_header (id, keys_json, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET keys_json = excluded.keys_json, updated_at = CURRENT_TIMESTAMP
		`, string(keysJSON))
		if err != nil {
			return fmt.Errorf("failed to write summary header: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO summary_rows (values_json) VALUES (?)`, string(valuesJSON)); err != nil {
		return fmt.Errorf("failed to append summary row: %w", err)
	}

	return tx.Commit()
}

// AppendSummaryWithRetry retries the append a few times with a short fixed
// backoff. The operation is not idempotent, but each attempt is a single
// transaction, so a failed attempt leaves nothing behind.
func (s *Store) AppendSummaryWithRetry(rec model.SummaryRecord, attempts int, backoff time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = s.AppendSummary(rec); err == nil {
			return nil
		}
		if i < attempts-1 {
			log.Printf("summary append attempt %d/%d failed: %v", i+1, attempts, err)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("append summary after %d attempts: %w", attempts, err)
}

// SummaryHeader returns the current worksheet header, or nil before the
// first append.
func (s *Store) SummaryHeader() ([]string, error) {
	var keysJSON string
	err := s.db.QueryRow(`SELECT keys_json FROM summary_header WHERE id = 1`).Scan(&keysJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read summary header: %w", err)
	}

	var keys []string
	if err := json.Unmarshal([]byte(keysJSON), &keys); err != nil {
		return nil, fmt.Errorf("failed to decode summary header: %w", err)
	}
	return keys, nil
}

// CountSummaries returns the number of appended summary rows.
func (s *Store) CountSummaries() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM summary_rows`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}

func sameHeader(storedJSON string, keys []string) bool {
	if storedJSON == "" {
		return false
	}
	var stored []string
	if err := json.Unmarshal([]byte(storedJSON), &stored); err != nil {
		return false
	}
	return slices.Equal(stored, keys)
}
