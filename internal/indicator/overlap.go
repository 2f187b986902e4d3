package indicator

import (
	"fmt"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// SMA is the simple moving average of the close over Window bars.
type SMA struct {
	Window int
}

func (s SMA) Name() string   { return fmt.Sprintf("SMA_%d", s.Window) }
func (s SMA) MinWindow() int { return s.Window }

func (s SMA) Compute(bars []model.Bar) []Column {
	out := rollingMean(validSeries(model.Closes(bars)), s.Window)
	return []Column{out.column(s.Name())}
}

// EMA is the exponential moving average of the close with the given span.
// Defined from the first bar because the recursion is seeded with it.
type EMA struct {
	Span int
}

func (e EMA) Name() string   { return fmt.Sprintf("EMA_%d", e.Span) }
func (e EMA) MinWindow() int { return 1 }

func (e EMA) Compute(bars []model.Bar) []Column {
	out := validSeries(emaSeries(model.Closes(bars), e.Span))
	return []Column{out.column(e.Name())}
}

// WMA is the linearly weighted moving average of the close, the most recent
// bar carrying the largest weight.
type WMA struct {
	Window int
}

func (w WMA) Name() string   { return fmt.Sprintf("WMA_%d", w.Window) }
func (w WMA) MinWindow() int { return w.Window }

func (w WMA) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	out := newColumn(w.Name(), len(bars))
	denom := float64(w.Window*(w.Window+1)) / 2.0
	for i := w.Window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := 0; j < w.Window; j++ {
			sum += closes[i-w.Window+1+j] * float64(j+1)
		}
		out.set(i, sum/denom)
	}
	return []Column{out}
}

// VWMA is the volume weighted moving average of the close.
type VWMA struct {
	Window int
}

func (v VWMA) Name() string   { return "vwma" }
func (v VWMA) MinWindow() int { return v.Window }

func (v VWMA) Compute(bars []model.Bar) []Column {
	n := len(bars)
	pv := newSeries(n)
	vol := newSeries(n)
	for i, b := range bars {
		pv.set(i, b.Close*float64(b.Volume))
		vol.set(i, float64(b.Volume))
	}
	pvSum := rollingSum(pv, v.Window)
	volSum := rollingSum(vol, v.Window)
	out := newColumn(v.Name(), n)
	for i := 0; i < n; i++ {
		if pvSum.valid[i] && volSum.valid[i] && volSum.values[i] != 0 {
			out.set(i, pvSum.values[i]/volSum.values[i])
		}
	}
	return []Column{out}
}

// Bollinger computes the middle/upper/lower bands: SMA(Window) with
// Mult rolling standard deviations either side.
type Bollinger struct {
	Window int
	Mult   float64
}

func (b Bollinger) Name() string   { return fmt.Sprintf("BB_%d_%.1f", b.Window, b.Mult) }
func (b Bollinger) MinWindow() int { return b.Window }

func (b Bollinger) Compute(bars []model.Bar) []Column {
	closes := validSeries(model.Closes(bars))
	mid := rollingMean(closes, b.Window)
	std := rollingStd(closes, b.Window)

	n := len(bars)
	suffix := fmt.Sprintf("_%d_%.1f", b.Window, b.Mult)
	lower := newColumn("BBL"+suffix, n)
	middle := newColumn("BBM"+suffix, n)
	upper := newColumn("BBU"+suffix, n)
	for i := 0; i < n; i++ {
		if !mid.valid[i] || !std.valid[i] {
			continue
		}
		middle.set(i, mid.values[i])
		upper.set(i, mid.values[i]+b.Mult*std.values[i])
		lower.set(i, mid.values[i]-b.Mult*std.values[i])
	}
	return []Column{lower, middle, upper}
}
