package indicator

import (
	"testing"
)

func TestRSI_Bounded(t *testing.T) {
	closes := []float64{44, 44.5, 43.9, 44.2, 45.0, 44.8, 45.5, 46.0, 45.2, 44.9,
		45.3, 45.8, 46.2, 45.9, 46.5, 46.1, 46.8, 47.0, 46.4, 46.9}
	col := RSI{Window: 14}.Compute(barsFromCloses(closes))[0]

	var defined int
	for i := range closes {
		if !col.Valid[i] {
			continue
		}
		defined++
		if col.Values[i] < 0 || col.Values[i] > 100 {
			t.Errorf("RSI out of [0,100] at %d: %v", i, col.Values[i])
		}
	}
	if defined == 0 {
		t.Fatal("expected RSI to be defined at the tail of a 20-bar series")
	}
	for i := 0; i < 14; i++ {
		if col.Valid[i] {
			t.Errorf("RSI should be undefined before 14 deltas accumulate, bar %d is set", i)
		}
	}
}

func TestRSI_ZeroLossSaturates(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i) // strictly rising
	}
	col := RSI{Window: 14}.Compute(barsFromCloses(closes))[0]
	last := len(closes) - 1
	if !col.Valid[last] || col.Values[last] != 100.0 {
		t.Errorf("RSI with zero average loss must saturate at 100, got %v (valid=%v)", col.Values[last], col.Valid[last])
	}
}

func TestRSI_FlatSeriesUndefined(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}
	col := RSI{Window: 14}.Compute(barsFromCloses(closes))[0]
	for i := range closes {
		if col.Valid[i] {
			t.Errorf("RSI of a flat series must stay null, bar %d is set", i)
		}
	}
}

func TestMACD_HistogramIsLineMinusSignal(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7) - float64(i%3)
	}
	cols := MACD{Fast: 12, Slow: 26, Signal: 9}.Compute(barsFromCloses(closes))
	line, hist, signal := cols[0], cols[1], cols[2]

	if line.Name != "MACD_12_26_9" || hist.Name != "MACDh_12_26_9" || signal.Name != "MACDs_12_26_9" {
		t.Errorf("unexpected MACD column names: %q %q %q", line.Name, hist.Name, signal.Name)
	}
	for i := range closes {
		if !almostEqual(hist.Values[i], line.Values[i]-signal.Values[i]) {
			t.Errorf("histogram != line-signal at %d", i)
		}
	}
}

func TestPSY_AllUpCloses(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 10 + float64(i)
	}
	col := PSY{Window: 12}.Compute(barsFromCloses(closes))[0]
	last := len(closes) - 1
	if !col.Valid[last] || col.Values[last] != 100.0 {
		t.Errorf("PSY of a strictly rising series must be 100, got %v", col.Values[last])
	}
}

func TestPSY_HalfUpCloses(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 101
		}
	}
	col := PSY{Window: 12}.Compute(barsFromCloses(closes))[0]
	last := len(closes) - 1
	if !col.Valid[last] || !almostEqual(col.Values[last], 50.0) {
		t.Errorf("PSY with alternating closes should be 50, got %v", col.Values[last])
	}
}

func TestMomentumAndROC(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112}
	mom := Momentum{Window: 10}.Compute(barsFromCloses(closes))[0]
	if !mom.Valid[12] || mom.Values[12] != 10 {
		t.Errorf("MOM(10) = %v, want 10", mom.Values[12])
	}
	roc := ROC{Window: 12}.Compute(barsFromCloses(closes))[0]
	if !roc.Valid[12] || !almostEqual(roc.Values[12], 12.0) {
		t.Errorf("ROC(12) = %v, want 12", roc.Values[12])
	}
	if roc.Valid[11] {
		t.Error("ROC should be undefined before the look-back is available")
	}
}
