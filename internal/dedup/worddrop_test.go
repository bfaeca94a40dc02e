package dedup

import (
	"testing"

	"github.com/matsen/refsift/internal/dataset"
)

func TestWordPosition_Key(t *testing.T) {
	tests := []struct {
		name  string
		pos   WordPosition
		title string
		want  string
		ok    bool
	}{
		{"first word", First, "A B C", "B C", true},
		{"last word", Last, "A B C", "A B", true},
		{"second word", Second, "A B C", "A C", true},
		{"middle of three", Middle, "One Two Three", "One Three", true},
		{"middle of four", Middle, "A B C D", "A B D", true},
		{"middle of five", Middle, "A B C D E", "A B D E", true},
		{"whitespace runs collapse", First, "  A \t B   C  ", "B C", true},
		{"two words first", First, "A B", "B", true},
		{"two words last", Last, "A B", "A", true},
		{"two words second", Second, "A B", "A", true},
		{"single word first", First, "Solo", "", false},
		{"single word last", Last, "Solo", "", false},
		{"single word second", Second, "Solo", "", false},
		{"two words middle too short", Middle, "A B", "", false},
		{"three words middle", Middle, "A B C", "A C", true},
		{"empty title", First, "", "", false},
		{"whitespace only", First, "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.pos.Key(tt.title)
			if ok != tt.ok {
				t.Fatalf("Key(%q) ok = %v, want %v", tt.title, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestWordPosition_Stage(t *testing.T) {
	want := []string{"drop-first-word", "drop-last-word", "drop-second-word", "drop-middle-word"}
	for i, pos := range Positions {
		if got := pos.Stage(); got != want[i] {
			t.Errorf("Positions[%d].Stage() = %q, want %q", i, got, want[i])
		}
	}
}

func TestWordDrop_SameKeyCollision(t *testing.T) {
	// Both titles reduce to "A B" under the first-word pass; the first in
	// input order survives.
	d := titleDataset("X A B", "Y A B")
	out := WordDrop(d, "title", First, nil)
	assertTitles(t, out, "X A B")
}

func TestWordDrop_CollapsesWithShorterTitle(t *testing.T) {
	// "A B C" minus its first word is exactly "B C": near-duplicates,
	// first-encountered wins in either order.
	out := WordDrop(titleDataset("A B C", "B C"), "title", First, nil)
	assertTitles(t, out, "A B C")

	out = WordDrop(titleDataset("B C", "A B C"), "title", First, nil)
	assertTitles(t, out, "B C")
}

func TestWordDrop_ShortTitleDroppedUnconditionally(t *testing.T) {
	// A single-token title has no key at the first-word position and is
	// removed outright, not passed through.
	out := WordDrop(titleDataset("Solo"), "title", First, nil)
	if out.Len() != 0 {
		t.Fatalf("kept %d rows, want 0", out.Len())
	}

	// Middle needs strictly more than two tokens.
	out = WordDrop(titleDataset("A B"), "title", Middle, nil)
	if out.Len() != 0 {
		t.Fatalf("kept %d rows, want 0", out.Len())
	}
}

func TestWordDrop_OrderPreserved(t *testing.T) {
	d := titleDataset("M N O", "P Q R", "S T U", "M X N O")
	out := WordDrop(d, "title", First, nil)
	assertTitles(t, out, "M N O", "P Q R", "S T U", "M X N O")
	for i := 1; i < out.Len(); i++ {
		if out.Rows[i].Index <= out.Rows[i-1].Index {
			t.Fatal("row order not preserved")
		}
	}
}

func TestWordDrop_DistinctTitlesSurvive(t *testing.T) {
	d := titleDataset("Alpha Beta Gamma", "Delta Epsilon Zeta")
	out := WordDrop(d, "title", Last, nil)
	if out.Len() != 2 {
		t.Errorf("kept %d rows, want 2", out.Len())
	}
}

func TestWordDrop_DropCallback(t *testing.T) {
	d := titleDataset("A B C", "B C", "Solo")

	type drop struct {
		stage string
		row   int
		dupOf int
	}
	var drops []drop
	WordDrop(d, "title", First, func(stage string, row dataset.Row, dupOf int) {
		drops = append(drops, drop{stage, row.Index, dupOf})
	})

	if len(drops) != 2 {
		t.Fatalf("got %d drops, want 2", len(drops))
	}
	if drops[0] != (drop{"drop-first-word", 1, 0}) {
		t.Errorf("drops[0] = %+v, want duplicate of row 0", drops[0])
	}
	if drops[1] != (drop{"drop-first-word", 2, -1}) {
		t.Errorf("drops[1] = %+v, want short-title removal", drops[1])
	}
}
