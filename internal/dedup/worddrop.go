package dedup

import (
	"strings"

	"github.com/matsen/refsift/internal/dataset"
)

// WordPosition selects which single title token is removed before key
// comparison. The numeric values match the reference behavior's selectors.
type WordPosition int

const (
	First  WordPosition = 0  // drop the first word
	Last   WordPosition = -1 // drop the last word
	Second WordPosition = 1  // drop the second word
	Middle WordPosition = 2  // drop the middle word
)

// Positions is the fixed pass order. Each pass consumes the previous pass's
// output, so a title can be eliminated by any one of the four checks and
// the earliest-surviving row always wins.
var Positions = []WordPosition{First, Last, Second, Middle}

// Stage returns the stage name used in statistics and audit records.
func (p WordPosition) Stage() string {
	switch p {
	case First:
		return "drop-first-word"
	case Last:
		return "drop-last-word"
	case Second:
		return "drop-second-word"
	case Middle:
		return "drop-middle-word"
	}
	return "drop-word"
}

// minTokens is the token count a title must strictly exceed to have a key
// at this position.
func (p WordPosition) minTokens() int {
	n := int(p)
	if n < 0 {
		n = -n
	}
	if n < 1 {
		n = 1
	}
	return n
}

// dropIndex returns the index of the token removed at this position.
func (p WordPosition) dropIndex(count int) int {
	switch p {
	case Last:
		return count - 1
	case Second:
		return 1
	case Middle:
		return count / 2
	}
	return 0
}

// Key derives the normalized key for a title at this position: trim, split
// on whitespace runs, remove the selected token, rejoin with single spaces.
// ok is false when the title has too few tokens to have a key.
func (p WordPosition) Key(title string) (key string, ok bool) {
	tokens := strings.Fields(title)
	if len(tokens) <= p.minTokens() {
		return "", false
	}
	return joinWithout(tokens, p.dropIndex(len(tokens))), true
}

func joinWithout(tokens []string, drop int) string {
	out := make([]string, 0, len(tokens)-1)
	out = append(out, tokens[:drop]...)
	out = append(out, tokens[drop+1:]...)
	return strings.Join(out, " ")
}

// WordDrop removes near-duplicates at one word position. Each kept row
// claims two title variants in the pass's seen set: its full title
// (whitespace-normalized) and its title with the selected word removed. A
// later row is dropped when either of its own variants is already claimed,
// which catches both an extra and a missing word at the position ("A B C"
// collapses with "B C" under the first-word pass, whichever comes first).
//
// Rows whose title is too short to have a key at this position are removed
// unconditionally rather than passed through; the reference behavior
// discards them and output counts depend on it.
func WordDrop(d *dataset.Dataset, titleColumn string, pos WordPosition, onDrop DropFunc) *dataset.Dataset {
	col := d.ColumnIndex(titleColumn)
	seen := make(map[string]int, 2*d.Len())
	kept := make([]dataset.Row, 0, d.Len())
	for _, row := range d.Rows {
		tokens := strings.Fields(row.Value(col))
		if len(tokens) <= pos.minTokens() {
			if onDrop != nil {
				onDrop(pos.Stage(), row, -1)
			}
			continue
		}

		key := joinWithout(tokens, pos.dropIndex(len(tokens)))
		full := strings.Join(tokens, " ")
		if first, dup := seen[key]; dup {
			if onDrop != nil {
				onDrop(pos.Stage(), row, first)
			}
			continue
		}
		if first, dup := seen[full]; dup {
			if onDrop != nil {
				onDrop(pos.Stage(), row, first)
			}
			continue
		}

		seen[key] = row.Index
		// The key of an earlier row may equal this row's full title;
		// the earlier claim stands.
		if _, claimed := seen[full]; !claimed {
			seen[full] = row.Index
		}
		kept = append(kept, row)
	}
	return d.Keep(kept)
}
