package checklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// remarkSeparator joins per-category remark texts in the rollup.
const remarkSeparator = "; "

// ParseQuestions reads the question table below the configured header row
// and returns the retained rows in document order. Scoring has not happened
// yet; ScoreRows does that.
//
// Any structural problem (header row beyond the sheet, a configured column
// missing from the sheet entirely) is fatal for the document: no rows are
// returned and the caller must not produce a partial result.
func ParseQuestions(g Grid, layout *model.LayoutConfig) ([]model.QuestionRow, error) {
	if layout.QuestionHeaderRow >= g.RowCount() {
		return nil, fmt.Errorf("question header row %d is beyond the sheet (%d rows)", layout.QuestionHeaderRow, g.RowCount())
	}

	// All configured columns must exist somewhere in the sheet. A template
	// mismatch shows up here as a column index wider than every row.
	width := g.MaxWidth()
	for _, c := range layout.Columns {
		if c.Index >= width {
			return nil, fmt.Errorf("column %q (index %d) not present in sheet (max width %d)", c.Role, c.Index, width)
		}
	}

	colCategory := layout.ColumnIndex(model.RoleCategoryLabel)
	colItemNo := layout.ColumnIndex(model.RoleItemNumber)
	colQuestion := layout.ColumnIndex(model.RoleQuestionText)
	colOK := layout.ColumnIndex(model.RoleOKMark)
	colPRN := layout.ColumnIndex(model.RolePartialMark)
	colNRIC := layout.ColumnIndex(model.RoleNonconformingMark)
	colRemark := layout.ColumnIndex(model.RoleRemarkText)

	rows := make([]model.QuestionRow, 0, g.RowCount())

	for r := layout.QuestionHeaderRow + 1; r < g.RowCount(); r++ {
		question := g.CellOrEmpty(r, colQuestion)
		if question == "" {
			// Trailing blank rows and decorative separators.
			continue
		}

		row := model.QuestionRow{
			Question: question,
			OKMark:   g.CellOrEmpty(r, colOK),
			PRNMark:  g.CellOrEmpty(r, colPRN),
			NRICMark: g.CellOrEmpty(r, colNRIC),
		}
		if colRemark >= 0 {
			row.Remark = g.CellOrEmpty(r, colRemark)
		}
		if colItemNo >= 0 {
			row.ItemNo = g.CellOrEmpty(r, colItemNo)
		}
		if colCategory >= 0 {
			row.Category = g.CellOrEmpty(r, colCategory)
		}

		rows = append(rows, row)
	}

	if layout.HasColumn(model.RoleCategoryLabel) {
		forwardFillCategories(rows)
		return rows, nil
	}

	return retainEnumeratedCategories(rows, layout), nil
}

// forwardFillCategories carries the last non-empty category label down
// through subsequent empty cells, modeling the visually merged header cell
// of the sheet.
func forwardFillCategories(rows []model.QuestionRow) {
	last := ""
	for i := range rows {
		if rows[i].Category != "" {
			last = rows[i].Category
		} else {
			rows[i].Category = last
		}
	}
}

// retainEnumeratedCategories resolves each row's category from its item
// number (the text before the first dot) and drops rows whose derived id is
// not in the layout's enumeration.
func retainEnumeratedCategories(rows []model.QuestionRow, layout *model.LayoutConfig) []model.QuestionRow {
	kept := rows[:0]
	for _, row := range rows {
		id, _, _ := strings.Cut(row.ItemNo, ".")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		name, ok := layout.CategoryName(id)
		if !ok {
			continue
		}
		row.Category = name
		kept = append(kept, row)
	}
	return kept
}

// ScoreRows assigns the scoring category and score to each row. The rule is
// strict first-match priority over the three mark cells: OK, then PRN, then
// NRIC, else Blank. A mark is present when its cell is non-empty after
// trimming, so exactly one category results no matter how many cells were
// filled in.
func ScoreRows(rows []model.QuestionRow) []model.QuestionRow {
	scored := make([]model.QuestionRow, len(rows))
	for i, row := range rows {
		switch {
		case strings.TrimSpace(row.OKMark) != "":
			row.ScoringCategory = model.ScoringOK
		case strings.TrimSpace(row.PRNMark) != "":
			row.ScoringCategory = model.ScoringPRN
		case strings.TrimSpace(row.NRICMark) != "":
			row.ScoringCategory = model.ScoringNRIC
		default:
			row.ScoringCategory = model.ScoringBlank
		}
		row.Score = row.ScoringCategory.Score()
		scored[i] = row
	}
	return scored
}

// Summarize computes the overall totals and the per-category rollups. Only
// scored rows (score > 0) count: an un-marked question contributes nothing
// to either the numerator or the denominator.
func Summarize(rows []model.QuestionRow, layout *model.LayoutConfig) (model.ScoreTotals, []model.CategoryRollup) {
	actual := 0
	scoredCount := 0
	for _, row := range rows {
		if row.Score > 0 {
			actual += row.Score
			scoredCount++
		}
	}

	max := scoredCount * model.MaxScorePerQuestion
	pct := Percentage(actual, max)
	grade := GradeFor(pct)

	totals := model.ScoreTotals{
		QuestionsAudited: scoredCount,
		Actual:           actual,
		Max:              max,
		Percentage:       pct,
		Grade:            grade.Grade,
		GradeLevel:       grade.Level,
		Description:      grade.Description,
	}

	return totals, rollupCategories(rows, layout)
}

// rollupCategories aggregates scored rows by category. The category order is
// the layout's enumeration when one is configured, otherwise the order of
// first appearance in the document; both are deterministic for a given
// layout and document.
func rollupCategories(rows []model.QuestionRow, layout *model.LayoutConfig) []model.CategoryRollup {
	var order []string
	index := map[string]int{}

	appendCategory := func(name string) {
		if _, ok := index[name]; !ok {
			index[name] = len(order)
			order = append(order, name)
		}
	}

	if len(layout.Categories) > 0 {
		for _, def := range layout.Categories {
			appendCategory(def.Name)
		}
	} else {
		for _, row := range rows {
			if row.Category != "" {
				appendCategory(row.Category)
			}
		}
	}

	rollups := make([]model.CategoryRollup, len(order))
	for i, name := range order {
		rollups[i] = model.CategoryRollup{Category: name}
	}

	remarks := make([][]string, len(order))
	for _, row := range rows {
		if row.Score <= 0 {
			continue
		}
		i, ok := index[row.Category]
		if !ok {
			continue
		}
		rollups[i].Actual += row.Score
		rollups[i].Max += model.MaxScorePerQuestion
		if row.Remark != "" {
			remarks[i] = append(remarks[i], row.Remark)
		}
	}

	for i := range rollups {
		rollups[i].Percentage = Percentage(rollups[i].Actual, rollups[i].Max)
		rollups[i].Remarks = strings.Join(remarks[i], remarkSeparator)
	}

	return rollups
}

// BuildSummaryRecord assembles the flat record persisted per document. Key
// order is part of the storage contract and must not depend on anything but
// the layout and the category set.
func BuildSummaryRecord(md model.Metadata, totals model.ScoreTotals, rollups []model.CategoryRollup, now time.Time) model.SummaryRecord {
	var rec model.SummaryRecord

	rec.Append("Timestamp", now.Format("2006-01-02 15:04:05"))
	for _, key := range model.MetadataFieldKeys {
		rec.Append(key, md.Value(key))
	}

	rec.Append("Total_Questions_Audited", totals.QuestionsAudited)
	rec.Append("Actual_Score", totals.Actual)
	rec.Append("Max_Possible_Score", totals.Max)
	rec.Append("Score_Percentage_pct", totals.Percentage)
	rec.Append("Grade", totals.Grade)
	rec.Append("Grade_Level", totals.GradeLevel)
	rec.Append("Description", totals.Description)

	for _, rollup := range rollups {
		key := sanitizeCategoryKey(rollup.Category)
		rec.Append("Score_"+key+"_Actual", rollup.Actual)
		rec.Append("Score_"+key+"_Max", rollup.Max)
		rec.Append("Remarks_"+key, rollup.Remarks)
	}

	return rec
}

// sanitizeCategoryKey turns a category display name into a stable record key
// segment: "&" is dropped, "/" separates words, runs of spaces collapse to
// single underscores.
func sanitizeCategoryKey(name string) string {
	name = strings.ReplaceAll(name, "&", " ")
	name = strings.ReplaceAll(name, "/", " ")
	return strings.Join(strings.Fields(name), "_")
}
