package indicator

import (
	"fmt"
	"math"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// RSI is the relative strength index over simple rolling averages of gains
// and losses. When the average loss is zero but gains exist the index
// saturates at 100; when both are zero the cell stays null.
type RSI struct {
	Window int
}

func (r RSI) Name() string   { return fmt.Sprintf("RSI_%d", r.Window) }
func (r RSI) MinWindow() int { return r.Window + 1 }

func (r RSI) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	n := len(closes)
	gains := newSeries(n)
	losses := newSeries(n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains.set(i, delta)
			losses.set(i, 0)
		} else {
			gains.set(i, 0)
			losses.set(i, -delta)
		}
	}
	avgGain := rollingMean(gains, r.Window)
	avgLoss := rollingMean(losses, r.Window)

	out := newColumn(r.Name(), n)
	for i := 0; i < n; i++ {
		if !avgGain.valid[i] || !avgLoss.valid[i] {
			continue
		}
		switch {
		case avgLoss.values[i] > 0:
			rs := avgGain.values[i] / avgLoss.values[i]
			out.set(i, 100.0-100.0/(1.0+rs))
		case avgGain.values[i] > 0:
			out.set(i, 100.0)
		}
		// both zero: flat window, value stays null
	}
	return []Column{out}
}

// MACD emits the MACD line (fast EMA minus slow EMA), its signal EMA, and
// the histogram (line minus signal).
type MACD struct {
	Fast, Slow, Signal int
}

func (m MACD) Name() string   { return fmt.Sprintf("MACD_%d_%d_%d", m.Fast, m.Slow, m.Signal) }
func (m MACD) MinWindow() int { return m.Slow }

func (m MACD) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	fast := emaSeries(closes, m.Fast)
	slow := emaSeries(closes, m.Slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := emaSeries(line, m.Signal)
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signal[i]
	}

	suffix := fmt.Sprintf("_%d_%d_%d", m.Fast, m.Slow, m.Signal)
	return []Column{
		validSeries(line).column("MACD" + suffix),
		validSeries(hist).column("MACDh" + suffix),
		validSeries(signal).column("MACDs" + suffix),
	}
}

// Stochastic emits %K (smoothed) and %D over the usual high/low range.
type Stochastic struct {
	Window int
	Smooth int
}

func (s Stochastic) Name() string   { return fmt.Sprintf("STOCH_%d_%d", s.Window, s.Smooth) }
func (s Stochastic) MinWindow() int { return s.Window + 2*(s.Smooth-1) }

func (s Stochastic) Compute(bars []model.Bar) []Column {
	n := len(bars)
	highs := newSeries(n)
	lows := newSeries(n)
	for i, b := range bars {
		highs.set(i, b.High)
		lows.set(i, b.Low)
	}
	hh := rollingMax(highs, s.Window)
	ll := rollingMin(lows, s.Window)

	raw := newSeries(n)
	for i, b := range bars {
		if !hh.valid[i] || !ll.valid[i] {
			continue
		}
		spread := hh.values[i] - ll.values[i]
		if spread == 0 {
			continue
		}
		raw.set(i, 100.0*(b.Close-ll.values[i])/spread)
	}
	k := rollingMean(raw, s.Smooth)
	d := rollingMean(k, s.Smooth)

	suffix := fmt.Sprintf("_%d_%d_%d", s.Window, s.Smooth, s.Smooth)
	return []Column{
		k.column("STOCHk" + suffix),
		d.column("STOCHd" + suffix),
	}
}

// CCI is the commodity channel index over the typical price with the
// conventional 0.015 scaling constant.
type CCI struct {
	Window int
}

func (c CCI) Name() string   { return fmt.Sprintf("CCI_%d_0.015", c.Window) }
func (c CCI) MinWindow() int { return c.Window }

func (c CCI) Compute(bars []model.Bar) []Column {
	n := len(bars)
	tp := newSeries(n)
	for i, b := range bars {
		tp.set(i, (b.High+b.Low+b.Close)/3.0)
	}
	sma := rollingMean(tp, c.Window)

	out := newColumn(c.Name(), n)
	for i := 0; i < n; i++ {
		if !sma.valid[i] {
			continue
		}
		var dev float64
		for j := i - c.Window + 1; j <= i; j++ {
			dev += math.Abs(tp.values[j] - sma.values[i])
		}
		dev /= float64(c.Window)
		if dev == 0 {
			continue
		}
		out.set(i, (tp.values[i]-sma.values[i])/(0.015*dev))
	}
	return []Column{out}
}

// WilliamsR is Williams %R: the close position within the trailing
// high/low range, scaled to [-100, 0].
type WilliamsR struct {
	Window int
}

func (w WilliamsR) Name() string   { return fmt.Sprintf("WILLR_%d", w.Window) }
func (w WilliamsR) MinWindow() int { return w.Window }

func (w WilliamsR) Compute(bars []model.Bar) []Column {
	n := len(bars)
	highs := newSeries(n)
	lows := newSeries(n)
	for i, b := range bars {
		highs.set(i, b.High)
		lows.set(i, b.Low)
	}
	hh := rollingMax(highs, w.Window)
	ll := rollingMin(lows, w.Window)

	out := newColumn(w.Name(), n)
	for i, b := range bars {
		if !hh.valid[i] || !ll.valid[i] {
			continue
		}
		spread := hh.values[i] - ll.values[i]
		if spread == 0 {
			continue
		}
		out.set(i, -100.0*(hh.values[i]-b.Close)/spread)
	}
	return []Column{out}
}

// ROC is the rate of change of the close over Window bars, in percent.
type ROC struct {
	Window int
}

func (r ROC) Name() string   { return fmt.Sprintf("ROC_%d", r.Window) }
func (r ROC) MinWindow() int { return r.Window + 1 }

func (r ROC) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	out := newColumn(r.Name(), len(closes))
	for i := r.Window; i < len(closes); i++ {
		prev := closes[i-r.Window]
		if prev == 0 {
			continue
		}
		out.set(i, 100.0*(closes[i]-prev)/prev)
	}
	return []Column{out}
}

// Momentum is the raw close difference over Window bars.
type Momentum struct {
	Window int
}

func (m Momentum) Name() string   { return fmt.Sprintf("MOM_%d", m.Window) }
func (m Momentum) MinWindow() int { return m.Window + 1 }

func (m Momentum) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	out := newColumn(m.Name(), len(closes))
	for i := m.Window; i < len(closes); i++ {
		out.set(i, closes[i]-closes[i-m.Window])
	}
	return []Column{out}
}

// PSY is the psychological line: the percentage of up-closes in the
// trailing window. A discrete rolling count, not a smoothed average.
type PSY struct {
	Window int
}

func (p PSY) Name() string   { return "psy" }
func (p PSY) MinWindow() int { return p.Window + 1 }

func (p PSY) Compute(bars []model.Bar) []Column {
	closes := model.Closes(bars)
	n := len(closes)
	ups := newSeries(n)
	for i := 1; i < n; i++ {
		if closes[i] > closes[i-1] {
			ups.set(i, 1)
		} else {
			ups.set(i, 0)
		}
	}
	counts := rollingSum(ups, p.Window)
	out := newColumn(p.Name(), n)
	for i := 0; i < n; i++ {
		if counts.valid[i] {
			out.set(i, 100.0*counts.values[i]/float64(p.Window))
		}
	}
	return []Column{out}
}
