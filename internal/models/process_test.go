package models

import "testing"

func TestParseSortSpec(t *testing.T) {
	tests := []struct {
		field, order string
		want         SortSpec
		wantErr      bool
	}{
		{"cpu", "desc", SortSpec{SortByCPU, Descending}, false},
		{"MEM", "", SortSpec{SortByMem, Ascending}, false},
		{" name ", "ascending", SortSpec{SortByName, Ascending}, false},
		{"pid", "Descending", SortSpec{SortByPID, Descending}, false},
		{"rss", "asc", SortSpec{}, true},
		{"cpu", "sideways", SortSpec{}, true},
	}

	for _, tt := range tests {
		got, err := ParseSortSpec(tt.field, tt.order)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortSpec(%q, %q) error = %v, wantErr %v", tt.field, tt.order, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortSpec(%q, %q) = %v, want %v", tt.field, tt.order, got, tt.want)
		}
	}
}

func TestSortSpecFlip(t *testing.T) {
	spec := SortSpec{Field: SortByCPU, Order: Descending}
	if got := spec.Flip(); got.Order != Ascending || got.Field != SortByCPU {
		t.Errorf("Flip() = %v", got)
	}
	if got := spec.Flip().Flip(); got != spec {
		t.Errorf("Flip().Flip() = %v, want %v", got, spec)
	}
}

func TestReportFailed(t *testing.T) {
	r := Report{Errors: map[string]string{"memory": "boom"}}
	if !r.Failed("memory") || r.Failed("cpu") {
		t.Errorf("Failed() mismatch for %v", r.Errors)
	}
	if (Report{}).Failed("cpu") {
		t.Error("empty report reports a failure")
	}
}
