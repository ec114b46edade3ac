package store

import (
	"fmt"
	"time"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// AuditLog is one processed-upload record.
type AuditLog struct {
	ID              int64     `json:"id"`
	Filename        string    `json:"filename"`
	Template        string    `json:"template"`
	Status          string    `json:"status"`
	QuestionsTotal  int       `json:"questionsTotal"`
	QuestionsScored int       `json:"questionsScored"`
	ScorePercentage float64   `json:"scorePercentage"`
	Grade           string    `json:"grade"`
	ErrorMessage    string    `json:"errorMessage,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// LogProcessed records a successfully scored upload.
func (s *Store) LogProcessed(result *model.AuditResult) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO audit_logs (filename, template, status, questions_total, questions_scored, score_percentage, grade)
		VALUES (?, ?, 'processed', ?, ?, ?, ?)
	`, result.FileName, result.Template, len(result.Rows), result.Totals.QuestionsAudited, result.Totals.Percentage, result.Totals.Grade)
	if err != nil {
		return 0, fmt.Errorf("failed to create audit log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get audit log id: %w", err)
	}
	return id, nil
}

// LogFailed records an upload whose question table could not be scored.
func (s *Store) LogFailed(filename, template, errorMessage string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO audit_logs (filename, template, status, error_message)
		VALUES (?, ?, 'error', ?)
	`, filename, template, errorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to create audit log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get audit log id: %w", err)
	}
	return id, nil
}

// ListAuditLogs returns the most recent upload records, newest first.
func (s *Store) ListAuditLogs(limit int) ([]*AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, template, status, questions_total, questions_scored, score_percentage, grade, error_message, created_at
		FROM audit_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*AuditLog
	for rows.Next() {
		l := &AuditLog{}
		if err := rows.Scan(&l.ID, &l.Filename, &l.Template, &l.Status, &l.QuestionsTotal, &l.QuestionsScored, &l.ScorePercentage, &l.Grade, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountAuditLogs returns the total number of processed uploads.
func (s *Store) CountAuditLogs() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return count, nil
}
