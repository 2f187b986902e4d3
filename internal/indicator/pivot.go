package indicator

import "github.com/huuquangchungkhoan/QuangvaQuang/internal/model"

// PivotPoints computes the classic pivot levels from the single most recent
// completed bar and broadcasts them onto every row, so any slice of the
// output table carries the levels.
type PivotPoints struct{}

func (PivotPoints) Name() string   { return "pivot" }
func (PivotPoints) MinWindow() int { return 1 }

func (PivotPoints) Compute(bars []model.Bar) []Column {
	n := len(bars)
	names := []string{"pivot", "support_1", "support_2", "support_3", "resistance_1", "resistance_2", "resistance_3"}
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = newColumn(name, n)
	}
	if n == 0 {
		return cols
	}

	last := bars[n-1]
	high, low := last.High, last.Low
	pivot := (high + low + last.Close) / 3.0
	levels := []float64{
		pivot,
		2*pivot - high,       // S1
		pivot - (high - low), // S2
		low - 2*(high-pivot), // S3
		2*pivot - low,        // R1
		pivot + (high - low), // R2
		high + 2*(pivot-low), // R3
	}
	for c := range cols {
		for i := 0; i < n; i++ {
			cols[c].set(i, levels[c])
		}
	}
	return cols
}
