package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// SchemaError reports that a required column is missing from an input file.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.File, e.Column)
}

// EncodingError reports an input file that is not valid UTF-8.
type EncodingError struct {
	File string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: not valid UTF-8", e.File)
}

// Load reads every row of every file, in file-list order then in-file row
// order, into one combined Dataset. Each file must have a header row
// containing titleColumn (exact match). The schema is the first-seen union
// of all headers; rows are padded to the final schema width.
//
// An empty path list returns an empty Dataset and no error.
func Load(paths []string, titleColumn string) (*Dataset, error) {
	d := &Dataset{}
	for _, path := range paths {
		if err := loadFile(d, path, titleColumn); err != nil {
			return nil, err
		}
	}
	// Earlier files' rows may be narrower than the final union schema.
	for i := range d.Rows {
		for len(d.Rows[i].Values) < len(d.Columns) {
			d.Rows[i].Values = append(d.Rows[i].Values, "")
		}
	}
	return d, nil
}

// loadFile appends one file's rows to the dataset, extending the schema
// with any columns not seen before.
func loadFile(d *Dataset, path, titleColumn string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return &EncodingError{File: path}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &SchemaError{File: path, Column: titleColumn}
		}
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	hasTitle := false
	for _, name := range header {
		if name == titleColumn {
			hasTitle = true
			break
		}
	}
	if !hasTitle {
		return &SchemaError{File: path, Column: titleColumn}
	}

	// Map this file's column positions onto the dataset schema,
	// appending columns the schema hasn't seen yet.
	colMap := make([]int, len(header))
	for i, name := range header {
		idx := d.ColumnIndex(name)
		if idx < 0 {
			idx = len(d.Columns)
			d.Columns = append(d.Columns, name)
		}
		colMap[i] = idx
	}

	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		values := make([]string, len(d.Columns))
		for i, v := range record {
			if i < len(colMap) {
				values[colMap[i]] = v
			}
		}
		d.Rows = append(d.Rows, Row{Index: len(d.Rows), Values: values})
	}
}
