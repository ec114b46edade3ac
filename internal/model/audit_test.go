package model

import (
	"encoding/json"
	"testing"
)

func TestPlaceholderMetadata(t *testing.T) {
	t.Parallel()

	md := PlaceholderMetadata("audit.xlsx")
	for _, key := range MetadataFieldKeys {
		want := PlaceholderValue
		if key == KeyFileName {
			want = "audit.xlsx"
		}
		if got := md.Value(key); got != want {
			t.Fatalf("%s=%q, want %q", key, got, want)
		}
	}
}

func TestSummaryRecordMarshalJSON_PreservesOrder(t *testing.T) {
	t.Parallel()

	var rec SummaryRecord
	rec.Append("Timestamp", "2026-08-29 10:30:00")
	rec.Append("Actual_Score", 8)
	rec.Append("Score_Percentage_pct", 88.89)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"Timestamp":"2026-08-29 10:30:00","Actual_Score":8,"Score_Percentage_pct":88.89}`
	if string(data) != want {
		t.Fatalf("json=%s, want %s", data, want)
	}
}

func TestSummaryRecordKeysValues(t *testing.T) {
	t.Parallel()

	var rec SummaryRecord
	rec.Append("a", 1)
	rec.Append("b", "two")

	if got := rec.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys=%v", got)
	}
	if v, ok := rec.Get("b"); !ok || v != "two" {
		t.Fatalf("Get(b)=%v,%v", v, ok)
	}
	if _, ok := rec.Get("missing"); ok {
		t.Fatalf("Get(missing) should not be found")
	}
}
