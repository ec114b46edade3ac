package checklist

import (
	"strings"
	"testing"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

func categoryLabelLayout() *model.LayoutConfig {
	return &model.LayoutConfig{
		MetadataRows: 2,
		MetadataCells: map[string]model.CellRef{
			model.KeyFactory: {Row: 0, Col: 1},
			model.KeyAuditor: {Row: 1, Col: 1},
		},
		QuestionHeaderRow: 2,
		Columns: []model.LayoutColumn{
			{Role: model.RoleCategoryLabel, Index: 0},
			{Role: model.RoleQuestionText, Index: 1},
			{Role: model.RoleOKMark, Index: 2},
			{Role: model.RolePartialMark, Index: 3},
			{Role: model.RoleNonconformingMark, Index: 4},
			{Role: model.RoleRemarkText, Index: 5},
		},
	}
}

func itemNumberLayout() *model.LayoutConfig {
	return &model.LayoutConfig{
		MetadataRows: 2,
		MetadataCells: map[string]model.CellRef{
			model.KeyFactory: {Row: 0, Col: 1},
		},
		QuestionHeaderRow: 1,
		Columns: []model.LayoutColumn{
			{Role: model.RoleItemNumber, Index: 0},
			{Role: model.RoleQuestionText, Index: 1},
			{Role: model.RoleOKMark, Index: 2},
			{Role: model.RolePartialMark, Index: 3},
			{Role: model.RoleNonconformingMark, Index: 4},
			{Role: model.RoleRemarkText, Index: 5},
		},
		Categories: []model.CategoryDef{
			{ID: "1", Name: "Personnel"},
			{ID: "2", Name: "Machine"},
		},
	}
}

func TestScoreRows_PriorityRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		ok, prn, nric string
		want     model.ScoringCategory
		score    int
	}{
		{"ok only", "x", "", "", model.ScoringOK, 3},
		{"prn only", "", "x", "", model.ScoringPRN, 2},
		{"nric only", "", "", "x", model.ScoringNRIC, 1},
		{"blank", "", "", "", model.ScoringBlank, 0},
		{"ok beats prn", "x", "x", "", model.ScoringOK, 3},
		{"ok beats nric", "x", "", "x", model.ScoringOK, 3},
		{"prn beats nric", "", "x", "x", model.ScoringPRN, 2},
		{"all three marked", "x", "x", "x", model.ScoringOK, 3},
	}

	for _, tc := range cases {
		rows := ScoreRows([]model.QuestionRow{{
			Question: "q",
			OKMark:   tc.ok,
			PRNMark:  tc.prn,
			NRICMark: tc.nric,
		}})
		if got := rows[0].ScoringCategory; got != tc.want {
			t.Fatalf("%s: category=%v, want %v", tc.name, got, tc.want)
		}
		if got := rows[0].Score; got != tc.score {
			t.Fatalf("%s: score=%d, want %d", tc.name, got, tc.score)
		}
	}
}

func TestParseQuestions_DropsEmptyQuestionRows(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor", "Somchai"},
		{"Category", "Question", "OK", "PRN", "NRIC", "Remark"},
		{"Machine", "Q1", "x", "", "", ""},
		{"Machine", "", "x", "x", "x", "marks but no question"},
		{"", "   ", "", "", "", ""},
		{"Machine", "Q2", "", "x", "", ""},
	})

	rows, err := ParseQuestions(g, categoryLabelLayout())
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count=%d, want 2", len(rows))
	}
	if rows[0].Question != "Q1" || rows[1].Question != "Q2" {
		t.Fatalf("unexpected questions: %q %q", rows[0].Question, rows[1].Question)
	}
}

func TestParseQuestions_ForwardFill(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor", "Somchai"},
		{"Category", "Question", "OK", "PRN", "NRIC", "Remark"},
		{"X", "q1", "x", "", "", ""},
		{"", "q2", "x", "", "", ""},
		{"", "q3", "x", "", "", ""},
		{"Y", "q4", "x", "", "", ""},
		{"", "q5", "x", "", "", ""},
	})

	rows, err := ParseQuestions(g, categoryLabelLayout())
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}

	want := []string{"X", "X", "X", "Y", "Y"}
	if len(rows) != len(want) {
		t.Fatalf("row count=%d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Category != w {
			t.Fatalf("row %d category=%q, want %q", i, rows[i].Category, w)
		}
	}
}

func TestParseQuestions_ItemNumberGrouping(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Item", "Question", "OK", "PRN", "NRIC", "Remark"},
		{"1.1", "q1", "x", "", "", ""},
		{"2.3", "q2", "", "x", "", ""},
		{"9.1", "unknown category id", "x", "", "", ""},
		{"", "missing item number", "x", "", "", ""},
	})

	rows, err := ParseQuestions(g, itemNumberLayout())
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count=%d, want 2", len(rows))
	}
	if rows[0].Category != "Personnel" || rows[1].Category != "Machine" {
		t.Fatalf("unexpected categories: %q %q", rows[0].Category, rows[1].Category)
	}
}

func TestParseQuestions_HeaderBeyondSheet(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
	})

	if _, err := ParseQuestions(g, categoryLabelLayout()); err == nil {
		t.Fatalf("expected error for header row beyond sheet")
	}
}

func TestParseQuestions_MissingColumn(t *testing.T) {
	t.Parallel()

	// Only 3 columns wide; the remark column at index 5 cannot exist.
	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor", "Somchai"},
		{"Category", "Question", "OK"},
		{"X", "q1", "x"},
	})

	_, err := ParseQuestions(g, categoryLabelLayout())
	if err == nil {
		t.Fatalf("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "not present") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummarize_BlankRowsExcluded(t *testing.T) {
	t.Parallel()

	rows := ScoreRows([]model.QuestionRow{
		{Category: "A", Question: "q1", OKMark: "x"},
		{Category: "A", Question: "q2"},
		{Category: "A", Question: "q3", NRICMark: "x"},
	})

	totals, rollups := Summarize(rows, categoryLabelLayout())

	if totals.QuestionsAudited != 2 {
		t.Fatalf("audited=%d, want 2", totals.QuestionsAudited)
	}
	if totals.Actual != 4 || totals.Max != 6 {
		t.Fatalf("actual/max=%d/%d, want 4/6", totals.Actual, totals.Max)
	}
	if len(rollups) != 1 || rollups[0].Actual != 4 || rollups[0].Max != 6 {
		t.Fatalf("unexpected rollups: %+v", rollups)
	}
}

func TestSummarize_EmptyCategoryRollup(t *testing.T) {
	t.Parallel()

	layout := itemNumberLayout()
	rows := ScoreRows([]model.QuestionRow{
		{Category: "Personnel", Question: "q1", OKMark: "x"},
		{Category: "Machine", Question: "q2"}, // blank, so Machine has no scored rows
	})

	_, rollups := Summarize(rows, layout)

	if len(rollups) != 2 {
		t.Fatalf("rollup count=%d, want 2 (full enumeration)", len(rollups))
	}
	machine := rollups[1]
	if machine.Category != "Machine" {
		t.Fatalf("rollup order: got %q second, want Machine", machine.Category)
	}
	if machine.Actual != 0 || machine.Max != 0 || machine.Percentage != 0 {
		t.Fatalf("empty category rollup=%+v, want 0/0 and 0%%", machine)
	}
}

func TestSummarize_RemarksJoined(t *testing.T) {
	t.Parallel()

	rows := ScoreRows([]model.QuestionRow{
		{Category: "A", Question: "q1", PRNMark: "x", Remark: "first"},
		{Category: "A", Question: "q2", OKMark: "x"},
		{Category: "A", Question: "q3", NRICMark: "x", Remark: "second"},
	})

	_, rollups := Summarize(rows, categoryLabelLayout())
	if got, want := rollups[0].Remarks, "first; second"; got != want {
		t.Fatalf("remarks=%q, want %q", got, want)
	}
}

func TestBuildSummaryRecord_KeyOrder(t *testing.T) {
	t.Parallel()

	g := NewGrid([][]string{
		{"Factory", "Plant7"},
		{"Auditor", "Somchai"},
		{"Category", "Question", "OK", "PRN", "NRIC", "Remark"},
		{"Machine", "q1", "x", "", "", ""},
		{"Documentation & Control", "q2", "", "x", "", "needs file"},
	})
	layout := categoryLabelLayout()

	rows, err := ParseQuestions(g, layout)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	rows = ScoreRows(rows)
	totals, rollups := Summarize(rows, layout)
	rec := BuildSummaryRecord(model.PlaceholderMetadata("f.csv"), totals, rollups, fixedNow(t))

	keys := rec.Keys()
	wantPrefix := []string{
		"Timestamp",
		"Date_of_Audit", "Time_Shift", "Factory", "Work_Area",
		"Observed_Personnel", "Supervisor", "Machine_ID", "Auditor", "File_Name",
		"Total_Questions_Audited", "Actual_Score", "Max_Possible_Score",
		"Score_Percentage_pct", "Grade", "Grade_Level", "Description",
		"Score_Machine_Actual", "Score_Machine_Max", "Remarks_Machine",
		"Score_Documentation_Control_Actual", "Score_Documentation_Control_Max", "Remarks_Documentation_Control",
	}
	if len(keys) != len(wantPrefix) {
		t.Fatalf("key count=%d, want %d: %v", len(keys), len(wantPrefix), keys)
	}
	for i, w := range wantPrefix {
		if keys[i] != w {
			t.Fatalf("key %d=%q, want %q", i, keys[i], w)
		}
	}

	if v, _ := rec.Get("Remarks_Documentation_Control"); v != "needs file" {
		t.Fatalf("Remarks_Documentation_Control=%v, want %q", v, "needs file")
	}
}
