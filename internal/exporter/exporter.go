package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// rowTableHeader is the column order of the exported annotated row table.
var rowTableHeader = []string{
	"Category",
	"Item_No",
	"Question",
	"OK",
	"PRN",
	"NRIC",
	"Remark",
	"Scoring_Category",
	"Score",
}

func rowValues(row model.QuestionRow) []string {
	return []string{
		row.Category,
		row.ItemNo,
		row.Question,
		row.OKMark,
		row.PRNMark,
		row.NRICMark,
		row.Remark,
		string(row.ScoringCategory),
		strconv.Itoa(row.Score),
	}
}

// WriteCSV serializes the annotated row table as UTF-8 CSV.
func WriteCSV(w io.Writer, rows []model.QuestionRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(rowTableHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(rowValues(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// BuildWorkbook renders a result as a two-sheet workbook: the annotated row
// table plus the flat summary record as key/value pairs. The caller owns the
// returned file and must Close it.
func BuildWorkbook(result *model.AuditResult) (*excelize.File, error) {
	f := excelize.NewFile()

	const rowSheet = "Audit Rows"
	if err := f.SetSheetName("Sheet1", rowSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeStringRow(f, rowSheet, 1, rowTableHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, row := range result.Rows {
		if err := writeStringRow(f, rowSheet, i+2, rowValues(row)); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, field := range result.Record.Fields {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, cell, field.Key); err != nil {
			_ = f.Close()
			return nil, err
		}
		cell, err = excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, cell, field.Value); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeStringRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
