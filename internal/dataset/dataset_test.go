package dataset

import "testing"

func TestColumnIndex(t *testing.T) {
	d := &Dataset{Columns: []string{"title", "abstract", "year"}}

	tests := []struct {
		name   string
		column string
		want   int
	}{
		{"first column", "title", 0},
		{"last column", "year", 2},
		{"absent column", "doi", -1},
		{"case sensitive", "Title", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ColumnIndex(tt.column); got != tt.want {
				t.Errorf("ColumnIndex(%q) = %d, want %d", tt.column, got, tt.want)
			}
		})
	}
}

func TestRowValue(t *testing.T) {
	row := Row{Index: 0, Values: []string{"a", "b"}}

	if got := row.Value(1); got != "b" {
		t.Errorf("Value(1) = %q, want %q", got, "b")
	}
	if got := row.Value(-1); got != "" {
		t.Errorf("Value(-1) = %q, want empty", got)
	}
	// Columns added by later input files are empty for earlier rows.
	if got := row.Value(5); got != "" {
		t.Errorf("Value(5) = %q, want empty", got)
	}
}

func TestKeep(t *testing.T) {
	d := &Dataset{
		Columns: []string{"title"},
		Rows: []Row{
			{Index: 0, Values: []string{"a"}},
			{Index: 1, Values: []string{"b"}},
			{Index: 2, Values: []string{"c"}},
		},
	}

	kept := d.Keep([]Row{d.Rows[0], d.Rows[2]})
	if kept.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", kept.Len())
	}
	if kept.Rows[0].Index != 0 || kept.Rows[1].Index != 2 {
		t.Errorf("kept indices = %d, %d, want 0, 2", kept.Rows[0].Index, kept.Rows[1].Index)
	}
	if kept.ColumnIndex("title") != 0 {
		t.Error("Keep() did not carry the schema")
	}
}
