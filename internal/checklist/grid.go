package checklist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the in-memory cell grid the whole pipeline works on. Both source
// encodings (workbook sheet and delimited text) load into the same shape, so
// nothing downstream cares where the document came from.
type Grid struct {
	rows [][]string
}

// NewGrid wraps raw rows. Rows may be ragged; Cell guards every access.
func NewGrid(rows [][]string) Grid {
	return Grid{rows: rows}
}

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int {
	return len(g.rows)
}

// Cell returns the raw value at (row, col). The second return value is false
// when the coordinate is out of bounds, which is distinct from an empty cell.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g.rows) {
		return "", false
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// CellOrEmpty reads a cell, treating out-of-bounds as empty and trimming
// whitespace. Question-table reads use this: short rows are common because
// trailing empty cells are dropped by the workbook reader.
func (g Grid) CellOrEmpty(row, col int) string {
	v, _ := g.Cell(row, col)
	return strings.TrimSpace(v)
}

// MaxWidth returns the widest row length in the grid.
func (g Grid) MaxWidth() int {
	width := 0
	for _, r := range g.rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}

// LoadWorkbook reads the first sheet of an xlsx workbook into a Grid.
func LoadWorkbook(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Grid{}, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Grid{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return NewGrid(rows), nil
}

// LoadCSV reads delimited text into a Grid. Records may have varying field
// counts; the checklist template pads and truncates rows freely.
func LoadCSV(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Grid{}, fmt.Errorf("read csv: %w", err)
	}

	return NewGrid(rows), nil
}

// LoadDocument picks the input adapter from the file extension.
func LoadDocument(fileName string, r io.Reader) (Grid, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return LoadWorkbook(r)
	case ".csv":
		return LoadCSV(r)
	default:
		return Grid{}, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(fileName))
	}
}
