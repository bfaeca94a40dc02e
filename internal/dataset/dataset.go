// Package dataset loads CSV reference exports into an in-memory row table.
package dataset

// Row is one record from an input file. Index is the row's position in the
// combined dataset, assigned at load time and stable through filtering.
// Values are aligned to the owning Dataset's Columns.
type Row struct {
	Index  int
	Values []string
}

// Dataset is an ordered sequence of rows sharing one column set.
// The column set is the first-seen union of the input files' headers.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// ColumnIndex returns the position of the named column, or -1 if absent.
// Column names are case-sensitive, as produced by the export platform.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists in the schema.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Value returns the row's value for the given column index, or "" when the
// row predates that column in the schema.
func (r Row) Value(col int) string {
	if col < 0 || col >= len(r.Values) {
		return ""
	}
	return r.Values[col]
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Keep returns a new Dataset with the same schema containing only the given
// rows, preserving their order. Rows are shared, not copied.
func (d *Dataset) Keep(rows []Row) *Dataset {
	return &Dataset{Columns: d.Columns, Rows: rows}
}
