package checklist

import (
	"fmt"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// ExtractMetadata reads the fixed header region of the checklist and maps the
// configured coordinates to metadata fields. It only ever looks at the first
// layout.MetadataRows rows.
//
// The fallback is all-or-nothing: if any configured coordinate is
// unreachable the whole block is considered unreadable and the caller should
// substitute model.PlaceholderMetadata. A mix of real and placeholder values
// would suggest a precision the data does not have.
func ExtractMetadata(g Grid, layout *model.LayoutConfig, fileName string) (model.Metadata, error) {
	md := model.Metadata{FileName: fileName}
	dst := md.FieldPointers()

	for field, ref := range layout.MetadataCells {
		p, ok := dst[field]
		if !ok {
			return model.Metadata{}, fmt.Errorf("unknown metadata field %q", field)
		}
		if ref.Row >= layout.MetadataRows {
			return model.Metadata{}, fmt.Errorf("metadata field %q at row %d is outside the header region", field, ref.Row)
		}
		v, ok := g.Cell(ref.Row, ref.Col)
		if !ok {
			return model.Metadata{}, fmt.Errorf("metadata field %q: cell (%d,%d) is out of bounds", field, ref.Row, ref.Col)
		}
		*p = v
	}

	return md, nil
}
