package dedup

import "github.com/matsen/refsift/internal/dataset"

// Stage names for the exact-match passes.
const (
	StageExactTitle    = "exact-title"
	StageExactAbstract = "exact-abstract"
)

// StageStats records one pass's row counts.
type StageStats struct {
	Stage   string `json:"stage"`
	In      int    `json:"rows_in"`
	Kept    int    `json:"rows_kept"`
	Dropped int    `json:"rows_dropped"`
}

// Result is the output of a full dedup run.
type Result struct {
	Dataset *dataset.Dataset
	Stages  []StageStats
}

// Options configures a dedup run. OnDrop, when non-nil, receives every
// removed row.
type Options struct {
	TitleColumn    string
	AbstractColumn string
	OnDrop         DropFunc
}

// Run applies the full pass sequence to a loaded dataset: exact title
// match, the four word-drop passes in fixed order, then exact abstract
// match when the abstract column exists. Each pass consumes the previous
// pass's output and preserves row order.
func Run(d *dataset.Dataset, opts Options) Result {
	var res Result

	next := ExactColumn(d, opts.TitleColumn, StageExactTitle, opts.OnDrop)
	res.Stages = append(res.Stages, stats(StageExactTitle, d, next))
	d = next

	for _, pos := range Positions {
		next = WordDrop(d, opts.TitleColumn, pos, opts.OnDrop)
		res.Stages = append(res.Stages, stats(pos.Stage(), d, next))
		d = next
	}

	next = ExactColumn(d, opts.AbstractColumn, StageExactAbstract, opts.OnDrop)
	res.Stages = append(res.Stages, stats(StageExactAbstract, d, next))

	res.Dataset = next
	return res
}

func stats(stage string, before, after *dataset.Dataset) StageStats {
	return StageStats{
		Stage:   stage,
		In:      before.Len(),
		Kept:    after.Len(),
		Dropped: before.Len() - after.Len(),
	}
}
