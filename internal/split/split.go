// Package split partitions a dataset into size-bounded CSV part files.
package split

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/refsift/internal/dataset"
)

// DefaultMaxBytes is the default chunk size limit (90 MB).
const DefaultMaxBytes = 90 * 1024 * 1024

// Chunk is a contiguous run of dataset rows with its serialized size.
type Chunk struct {
	Rows  []dataset.Row
	Bytes int
}

// rowSize returns the serialized CSV size of one row in bytes, UTF-8
// encoded, trailing newline included.
func rowSize(values []string) int {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(values)
	w.Flush()
	return buf.Len()
}

// Plan partitions rows in input order into consecutive chunks whose
// serialized sizes stay within maxBytes. A row that would push a non-empty
// chunk past the limit starts the next chunk instead; a single row larger
// than maxBytes occupies a chunk alone rather than causing an error. The
// header row is not counted against the budget. The final partial chunk is
// always emitted.
func Plan(d *dataset.Dataset, maxBytes int) []Chunk {
	var chunks []Chunk
	var cur Chunk
	for _, row := range d.Rows {
		size := rowSize(row.Values)
		if len(cur.Rows) > 0 && cur.Bytes+size > maxBytes {
			chunks = append(chunks, cur)
			cur = Chunk{}
		}
		cur.Rows = append(cur.Rows, row)
		cur.Bytes += size
	}
	if len(cur.Rows) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// Write persists chunks as <base>_part_<N>.csv files in dir, N starting at
// 1, each with the dataset's full header. It returns the written paths.
func Write(d *dataset.Dataset, chunks []Chunk, dir, base string) ([]string, error) {
	paths := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		path := filepath.Join(dir, fmt.Sprintf("%s_part_%d.csv", base, i+1))
		if err := writeChunk(path, d.Columns, chunk); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChunk(path string, header []string, chunk Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Write(header)
	for _, row := range chunk.Rows {
		w.Write(row.Values)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
