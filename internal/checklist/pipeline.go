package checklist

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// Process runs the full pipeline for one document: metadata extraction,
// question parsing, scoring, rollups and summary assembly.
//
// Failure semantics follow the two-tier rule: an unreadable metadata block
// degrades to placeholder values plus a notice and the pipeline continues,
// while a structural failure in the question table aborts the document with
// no result at all.
func Process(g Grid, layout *model.LayoutConfig, template, fileName string, now time.Time) (*model.AuditResult, error) {
	result := &model.AuditResult{
		ID:          uuid.New().String(),
		Template:    template,
		FileName:    fileName,
		ProcessedAt: now,
	}

	md, err := ExtractMetadata(g, layout, fileName)
	if err != nil {
		md = model.PlaceholderMetadata(fileName)
		result.MetadataFallback = true
		result.Notices = append(result.Notices, fmt.Sprintf("metadata block unreadable, using %q placeholders: %v", model.PlaceholderValue, err))
	}
	result.Metadata = md

	rows, err := ParseQuestions(g, layout)
	if err != nil {
		return nil, fmt.Errorf("parse question table: %w", err)
	}

	result.Rows = ScoreRows(rows)
	result.Totals, result.Categories = Summarize(result.Rows, layout)
	result.Record = BuildSummaryRecord(md, result.Totals, result.Categories, now)

	return result, nil
}
