// Package dedup implements the exact and word-drop duplicate filters.
package dedup

import "github.com/matsen/refsift/internal/dataset"

// DropFunc is called for each row a stage removes. dupOf is the dataset
// index of the surviving row the removed one duplicated, or -1 when the row
// was removed for having too few title words.
type DropFunc func(stage string, row dataset.Row, dupOf int)

// ExactColumn keeps, for each distinct raw value of the named column, only
// the first row in input order. Comparison is byte-for-byte: no trimming,
// no case folding. Empty values are a single equality class, so all rows
// with an empty value collapse to the first of them.
//
// If the column is absent from the schema the dataset is returned
// unchanged.
func ExactColumn(d *dataset.Dataset, column, stage string, onDrop DropFunc) *dataset.Dataset {
	col := d.ColumnIndex(column)
	if col < 0 {
		return d
	}

	seen := make(map[string]int, d.Len())
	kept := make([]dataset.Row, 0, d.Len())
	for _, row := range d.Rows {
		v := row.Value(col)
		if first, dup := seen[v]; dup {
			if onDrop != nil {
				onDrop(stage, row, first)
			}
			continue
		}
		seen[v] = row.Index
		kept = append(kept, row)
	}
	return d.Keep(kept)
}
