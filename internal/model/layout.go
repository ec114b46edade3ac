package model

import (
	"fmt"
	"strings"
)

// ColumnRole identifies the semantic meaning of one extracted column.
type ColumnRole string

const (
	RoleCategoryLabel     ColumnRole = "category-label"
	RoleItemNumber        ColumnRole = "item-number"
	RoleQuestionText      ColumnRole = "question-text"
	RoleOKMark            ColumnRole = "ok-mark"
	RolePartialMark       ColumnRole = "partial-mark"
	RoleNonconformingMark ColumnRole = "nonconforming-mark"
	RoleRemarkText        ColumnRole = "remark-text"
)

// CellRef is a 0-based (row, column) coordinate inside the sheet.
type CellRef struct {
	Row int `toml:"row" json:"row"`
	Col int `toml:"col" json:"col"`
}

// LayoutColumn binds a sheet column index to its role in the question table.
type LayoutColumn struct {
	Role  ColumnRole `toml:"role" json:"role"`
	Index int        `toml:"index" json:"index"`
}

// CategoryDef maps a derived category id (the item-number prefix before the
// first dot) to its canonical display name. Older checklist revisions have no
// category column, only numbered items.
type CategoryDef struct {
	ID   string `toml:"id" json:"id"`
	Name string `toml:"name" json:"name"`
}

// LayoutConfig describes where one checklist template keeps its data. All
// fragile position assumptions live here; a new template revision means a new
// LayoutConfig, not code changes.
type LayoutConfig struct {
	// MetadataRows bounds the header region; the extractor never reads
	// past it.
	MetadataRows int `toml:"metadata_rows" json:"metadataRows"`

	// MetadataCells maps metadata field keys to fixed coordinates.
	MetadataCells map[string]CellRef `toml:"metadata_cells" json:"metadataCells"`

	// QuestionHeaderRow is the 0-based row holding the question-table
	// column headers; data starts on the next row.
	QuestionHeaderRow int `toml:"question_header_row" json:"questionHeaderRow"`

	// Columns lists the sheet columns to extract, labelled by role.
	Columns []LayoutColumn `toml:"columns" json:"columns"`

	// Categories enumerates the known categories for item-number grouping.
	// Empty when the template has a category-label column instead.
	Categories []CategoryDef `toml:"categories" json:"categories,omitempty"`
}

// ColumnIndex returns the sheet column configured for a role, or -1.
func (l *LayoutConfig) ColumnIndex(role ColumnRole) int {
	for _, c := range l.Columns {
		if c.Role == role {
			return c.Index
		}
	}
	return -1
}

// HasColumn reports whether a role is configured.
func (l *LayoutConfig) HasColumn(role ColumnRole) bool {
	return l.ColumnIndex(role) >= 0
}

// CategoryName resolves a derived category id against the enumeration.
func (l *LayoutConfig) CategoryName(id string) (string, bool) {
	for _, c := range l.Categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

var knownRoles = map[ColumnRole]bool{
	RoleCategoryLabel:     true,
	RoleItemNumber:        true,
	RoleQuestionText:      true,
	RoleOKMark:            true,
	RolePartialMark:       true,
	RoleNonconformingMark: true,
	RoleRemarkText:        true,
}

// Validate checks a layout at load time so that bad templates fail at
// startup instead of mid-document.
func (l *LayoutConfig) Validate() error {
	if l.MetadataRows <= 0 {
		return fmt.Errorf("metadata_rows must be positive, got %d", l.MetadataRows)
	}
	if l.QuestionHeaderRow < 0 {
		return fmt.Errorf("question_header_row must not be negative, got %d", l.QuestionHeaderRow)
	}

	for field, ref := range l.MetadataCells {
		if !isMetadataKey(field) {
			return fmt.Errorf("unknown metadata field %q", field)
		}
		if ref.Row < 0 || ref.Col < 0 {
			return fmt.Errorf("metadata field %q has negative coordinate (%d,%d)", field, ref.Row, ref.Col)
		}
		if ref.Row >= l.MetadataRows {
			return fmt.Errorf("metadata field %q at row %d is outside the %d-row header region", field, ref.Row, l.MetadataRows)
		}
	}

	seen := map[ColumnRole]bool{}
	for _, c := range l.Columns {
		if !knownRoles[c.Role] {
			return fmt.Errorf("unknown column role %q", c.Role)
		}
		if c.Index < 0 {
			return fmt.Errorf("column %q has negative index %d", c.Role, c.Index)
		}
		if seen[c.Role] {
			return fmt.Errorf("column role %q configured twice", c.Role)
		}
		seen[c.Role] = true
	}

	for _, required := range []ColumnRole{RoleQuestionText, RoleOKMark, RolePartialMark, RoleNonconformingMark} {
		if !seen[required] {
			return fmt.Errorf("required column %q is not configured", required)
		}
	}

	if !seen[RoleCategoryLabel] {
		// Without a category label, grouping needs numbered items plus the
		// category enumeration to resolve them.
		if !seen[RoleItemNumber] {
			return fmt.Errorf("layout needs a %q or %q column for grouping", RoleCategoryLabel, RoleItemNumber)
		}
		if len(l.Categories) == 0 {
			return fmt.Errorf("item-number grouping requires a category enumeration")
		}
	}

	ids := map[string]bool{}
	for _, c := range l.Categories {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("category enumeration entries need both id and name")
		}
		if ids[c.ID] {
			return fmt.Errorf("category id %q enumerated twice", c.ID)
		}
		ids[c.ID] = true
	}

	return nil
}

func isMetadataKey(key string) bool {
	for _, k := range MetadataFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
