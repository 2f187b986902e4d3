package indicator

import (
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// moneyFlowMultiplier is ((C-L)-(H-C))/(H-L), zero on a flat bar.
func moneyFlowMultiplier(b model.Bar) float64 {
	spread := b.High - b.Low
	if spread == 0 {
		return 0
	}
	return ((b.Close - b.Low) - (b.High - b.Close)) / spread
}

// OBV is on-balance volume: cumulative volume signed by the close change.
type OBV struct{}

func (OBV) Name() string   { return "obv" }
func (OBV) MinWindow() int { return 1 }

func (o OBV) Compute(bars []model.Bar) []Column {
	out := newColumn(o.Name(), len(bars))
	if len(bars) == 0 {
		return []Column{out}
	}
	acc := float64(bars[0].Volume)
	out.set(0, acc)
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			acc += float64(bars[i].Volume)
		case bars[i].Close < bars[i-1].Close:
			acc -= float64(bars[i].Volume)
		}
		out.set(i, acc)
	}
	return []Column{out}
}

// AccumDist is the accumulation/distribution line: cumulative money-flow
// volume.
type AccumDist struct{}

func (AccumDist) Name() string   { return "ad" }
func (AccumDist) MinWindow() int { return 1 }

func (a AccumDist) Compute(bars []model.Bar) []Column {
	out := newColumn(a.Name(), len(bars))
	acc := 0.0
	for i, b := range bars {
		acc += moneyFlowMultiplier(b) * float64(b.Volume)
		out.set(i, acc)
	}
	return []Column{out}
}

// CMF is the Chaikin money flow ratio over the trailing window.
type CMF struct {
	Window int
}

func (c CMF) Name() string   { return "cmf" }
func (c CMF) MinWindow() int { return c.Window }

func (c CMF) Compute(bars []model.Bar) []Column {
	n := len(bars)
	mfv := newSeries(n)
	vol := newSeries(n)
	for i, b := range bars {
		mfv.set(i, moneyFlowMultiplier(b)*float64(b.Volume))
		vol.set(i, float64(b.Volume))
	}
	mfvSum := rollingSum(mfv, c.Window)
	volSum := rollingSum(vol, c.Window)
	out := newColumn(c.Name(), n)
	for i := 0; i < n; i++ {
		if mfvSum.valid[i] && volSum.valid[i] && volSum.values[i] != 0 {
			out.set(i, mfvSum.values[i]/volSum.values[i])
		}
	}
	return []Column{out}
}

// MFI is the money flow index over the typical price. Zero negative flow
// saturates at 100, mirroring how the RSI handles a zero average loss.
type MFI struct {
	Window int
}

func (m MFI) Name() string   { return "mfi" }
func (m MFI) MinWindow() int { return m.Window + 1 }

func (m MFI) Compute(bars []model.Bar) []Column {
	n := len(bars)
	pos := newSeries(n)
	neg := newSeries(n)
	var prevTP float64
	for i, b := range bars {
		tp := (b.High + b.Low + b.Close) / 3.0
		if i > 0 {
			flow := tp * float64(b.Volume)
			switch {
			case tp > prevTP:
				pos.set(i, flow)
				neg.set(i, 0)
			case tp < prevTP:
				pos.set(i, 0)
				neg.set(i, flow)
			default:
				pos.set(i, 0)
				neg.set(i, 0)
			}
		}
		prevTP = tp
	}
	posSum := rollingSum(pos, m.Window)
	negSum := rollingSum(neg, m.Window)
	out := newColumn(m.Name(), n)
	for i := 0; i < n; i++ {
		if !posSum.valid[i] || !negSum.valid[i] {
			continue
		}
		switch {
		case negSum.values[i] > 0:
			ratio := posSum.values[i] / negSum.values[i]
			out.set(i, 100.0-100.0/(1.0+ratio))
		case posSum.values[i] > 0:
			out.set(i, 100.0)
		}
	}
	return []Column{out}
}

// PVT is the price-volume trend: cumulative volume scaled by the relative
// close change. Undefined at bar 0.
type PVT struct{}

func (PVT) Name() string   { return "pvt" }
func (PVT) MinWindow() int { return 2 }

func (p PVT) Compute(bars []model.Bar) []Column {
	out := newColumn(p.Name(), len(bars))
	acc := 0.0
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		acc += float64(bars[i].Volume) * (bars[i].Close - prev) / prev
		out.set(i, acc)
	}
	return []Column{out}
}
