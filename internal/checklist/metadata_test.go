package checklist

import (
	"testing"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor", "Somchai"},
		{"this row is past the header region"},
	})

	md, err := ExtractMetadata(g, categoryLabelLayout(), "audit.xlsx")
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}
	if md.Factory != "Plant7" {
		t.Fatalf("Factory=%q, want Plant7", md.Factory)
	}
	if md.Auditor != "Somchai" {
		t.Fatalf("Auditor=%q, want Somchai", md.Auditor)
	}
	if md.FileName != "audit.xlsx" {
		t.Fatalf("FileName=%q", md.FileName)
	}
	// Unconfigured fields stay empty; the placeholder only applies on
	// extraction failure.
	if md.Supervisor != "" {
		t.Fatalf("Supervisor=%q, want empty", md.Supervisor)
	}
}

func TestExtractMetadata_OutOfBoundsFailsWholeBlock(t *testing.T) {
	t.Parallel()

	// Row 1 has no second column, so the auditor coordinate is unreachable.
	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor"},
	})

	if _, err := ExtractMetadata(g, categoryLabelLayout(), "audit.xlsx"); err == nil {
		t.Fatalf("expected error for unreachable coordinate")
	}
}

func TestExtractMetadata_NeverReadsPastHeaderRegion(t *testing.T) {
	t.Parallel()

	layout := &model.LayoutConfig{
		MetadataRows: 1,
		MetadataCells: map[string]model.CellRef{
			// Misconfigured to point past the bounded region.
			model.KeyFactory: {Row: 5, Col: 0},
		},
		QuestionHeaderRow: 1,
		Columns: []model.LayoutColumn{
			{Role: model.RoleCategoryLabel, Index: 0},
			{Role: model.RoleQuestionText, Index: 1},
			{Role: model.RoleOKMark, Index: 2},
			{Role: model.RolePartialMark, Index: 3},
			{Role: model.RoleNonconformingMark, Index: 4},
		},
	}

	g := NewGrid([][]string{
		{"row0"},
		{"row1"},
		{"row2"},
		{"row3"},
		{"row4"},
		{"row5: must not be read"},
	})

	if _, err := ExtractMetadata(g, layout, "audit.xlsx"); err == nil {
		t.Fatalf("coordinates outside the header region must fail")
	}
}
