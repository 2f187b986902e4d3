package indicator

import (
	"fmt"
	"math"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// trueRanges computes the per-bar true range. Undefined at bar 0 because a
// previous close is required.
func trueRanges(bars []model.Bar) series {
	tr := newSeries(len(bars))
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr.set(i, math.Max(hl, math.Max(hc, lc)))
	}
	return tr
}

// TrueRange emits the raw per-bar true range column.
type TrueRange struct{}

func (TrueRange) Name() string   { return "TRUERANGE_1" }
func (TrueRange) MinWindow() int { return 2 }

func (t TrueRange) Compute(bars []model.Bar) []Column {
	return []Column{trueRanges(bars).column(t.Name())}
}

// ATR is the Wilder-smoothed average true range, plus its normalized form
// as a percentage of the close.
type ATR struct {
	Window int
}

func (a ATR) Name() string   { return fmt.Sprintf("ATR_%d", a.Window) }
func (a ATR) MinWindow() int { return a.Window + 1 }

func (a ATR) Compute(bars []model.Bar) []Column {
	n := len(bars)
	tr := trueRanges(bars)
	atr := newColumn("atr", n)
	natr := newColumn("atr_normalized", n)

	// Seed with the plain mean of the first Window true ranges, then apply
	// Wilder smoothing.
	if n > a.Window {
		sum := 0.0
		for i := 1; i <= a.Window; i++ {
			sum += tr.values[i]
		}
		prev := sum / float64(a.Window)
		atr.set(a.Window, prev)
		for i := a.Window + 1; i < n; i++ {
			prev = (prev*float64(a.Window-1) + tr.values[i]) / float64(a.Window)
			atr.set(i, prev)
		}
	}
	for i := 0; i < n; i++ {
		if atr.Valid[i] && bars[i].Close != 0 {
			natr.set(i, 100.0*atr.Values[i]/bars[i].Close)
		}
	}
	return []Column{atr, natr}
}
