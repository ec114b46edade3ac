package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Metadata field keys, in the order they appear in the summary record.
const (
	KeyDateOfAudit       = "Date_of_Audit"
	KeyTimeShift         = "Time_Shift"
	KeyFactory           = "Factory"
	KeyWorkArea          = "Work_Area"
	KeyObservedPersonnel = "Observed_Personnel"
	KeySupervisor        = "Supervisor"
	KeyMachineID         = "Machine_ID"
	KeyAuditor           = "Auditor"
	KeyFileName          = "File_Name"
)

// MetadataFieldKeys lists the metadata keys in record order.
var MetadataFieldKeys = []string{
	KeyDateOfAudit,
	KeyTimeShift,
	KeyFactory,
	KeyWorkArea,
	KeyObservedPersonnel,
	KeySupervisor,
	KeyMachineID,
	KeyAuditor,
	KeyFileName,
}

// PlaceholderValue is substituted for every metadata field when the header
// block cannot be read.
const PlaceholderValue = "N/A"

// Metadata holds the audit context read from the checklist header block.
// It is always fully populated: extraction failure fills every field with
// PlaceholderValue instead of leaving gaps.
type Metadata struct {
	DateOfAudit       string `json:"dateOfAudit"`
	TimeShift         string `json:"timeShift"`
	Factory           string `json:"factory"`
	WorkArea          string `json:"workArea"`
	ObservedPersonnel string `json:"observedPersonnel"`
	Supervisor        string `json:"supervisor"`
	MachineID         string `json:"machineId"`
	Auditor           string `json:"auditor"`
	FileName          string `json:"fileName"`
}

// PlaceholderMetadata returns the all-"N/A" fallback record. Only the source
// file name survives, since it comes from the upload rather than the sheet.
func PlaceholderMetadata(fileName string) Metadata {
	return Metadata{
		DateOfAudit:       PlaceholderValue,
		TimeShift:         PlaceholderValue,
		Factory:           PlaceholderValue,
		WorkArea:          PlaceholderValue,
		ObservedPersonnel: PlaceholderValue,
		Supervisor:        PlaceholderValue,
		MachineID:         PlaceholderValue,
		Auditor:           PlaceholderValue,
		FileName:          fileName,
	}
}

// FieldPointers maps metadata keys to their struct fields, used by the
// extractor to write configured coordinates into the right slot.
func (m *Metadata) FieldPointers() map[string]*string {
	return map[string]*string{
		KeyDateOfAudit:       &m.DateOfAudit,
		KeyTimeShift:         &m.TimeShift,
		KeyFactory:           &m.Factory,
		KeyWorkArea:          &m.WorkArea,
		KeyObservedPersonnel: &m.ObservedPersonnel,
		KeySupervisor:        &m.Supervisor,
		KeyMachineID:         &m.MachineID,
		KeyAuditor:           &m.Auditor,
		KeyFileName:          &m.FileName,
	}
}

// Value returns the metadata value for a record key.
func (m *Metadata) Value(key string) string {
	if p, ok := m.FieldPointers()[key]; ok {
		return *p
	}
	return ""
}

// ScoringCategory classifies one checklist row by its mark cells.
type ScoringCategory string

const (
	ScoringOK    ScoringCategory = "OK"
	ScoringPRN   ScoringCategory = "PRN"
	ScoringNRIC  ScoringCategory = "NRIC"
	ScoringBlank ScoringCategory = "Blank"
)

// Score returns the value for the category. It is a pure function: the same
// category always yields the same score.
func (c ScoringCategory) Score() int {
	switch c {
	case ScoringOK:
		return 3
	case ScoringPRN:
		return 2
	case ScoringNRIC:
		return 1
	default:
		return 0
	}
}

// MaxScorePerQuestion is the value a fully conforming answer contributes.
const MaxScorePerQuestion = 3

// QuestionRow is one evaluated checklist item.
type QuestionRow struct {
	Category string `json:"category"`
	ItemNo   string `json:"itemNo,omitempty"`
	Question string `json:"question"`
	OKMark   string `json:"okMark"`
	PRNMark  string `json:"prnMark"`
	NRICMark string `json:"nricMark"`
	Remark   string `json:"remark"`

	ScoringCategory ScoringCategory `json:"scoringCategory"`
	Score           int             `json:"score"`
}

// CategoryRollup aggregates the scored rows of one category.
type CategoryRollup struct {
	Category   string  `json:"category"`
	Actual     int     `json:"actual"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
	Remarks    string  `json:"remarks"`
}

// ScoreTotals is the overall grading result for one document.
type ScoreTotals struct {
	QuestionsAudited int     `json:"questionsAudited"`
	Actual           int     `json:"actual"`
	Max              int     `json:"max"`
	Percentage       float64 `json:"percentage"`
	Grade            string  `json:"grade"`
	GradeLevel       string  `json:"gradeLevel"`
	Description      string  `json:"description"`
}

// SummaryField is one key/value pair of the flat summary record.
type SummaryField struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// SummaryRecord is the single flattened row persisted per audited document.
// Field order is part of the contract: the tabular store compares it against
// its existing header row, so it must be stable for a given layout and
// category set.
type SummaryRecord struct {
	Fields []SummaryField `json:"fields"`
}

// Append adds one field to the record.
func (r *SummaryRecord) Append(key string, value any) {
	r.Fields = append(r.Fields, SummaryField{Key: key, Value: value})
}

// Keys returns the ordered header row.
func (r *SummaryRecord) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Values returns the ordered value row.
func (r *SummaryRecord) Values() []any {
	values := make([]any, 0, len(r.Fields))
	for _, f := range r.Fields {
		values = append(values, f.Value)
	}
	return values
}

// Get looks up a field by key.
func (r *SummaryRecord) Get(key string) (any, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON emits the record as a JSON object that preserves field order.
func (r SummaryRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AuditResult is everything produced from one checklist document.
type AuditResult struct {
	ID               string           `json:"id"`
	Template         string           `json:"template"`
	FileName         string           `json:"fileName"`
	ProcessedAt      time.Time        `json:"processedAt"`
	Metadata         Metadata         `json:"metadata"`
	MetadataFallback bool             `json:"metadataFallback"`
	Notices          []string         `json:"notices,omitempty"`
	Rows             []QuestionRow    `json:"rows"`
	Totals           ScoreTotals      `json:"totals"`
	Categories       []CategoryRollup `json:"categories"`
	Record           SummaryRecord    `json:"record"`
}
