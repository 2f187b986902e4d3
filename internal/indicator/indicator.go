// Package indicator computes the technical-indicator battery for one
// instrument's time-ordered bar series. Indicators are declared as a
// catalog of small values implementing a single interface, so the engine
// and the orchestrator never know individual algorithms, and the reduced
// core set is just a smaller catalog selection.
package indicator

import (
	"log"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// Indicator set names.
const (
	SetFull = "full"
	SetCore = "core"
)

// Column is one output indicator column. Valid marks which cells carry a
// value; invalid cells are written as nulls so consumers can distinguish
// "not yet computable" from a computed zero.
type Column struct {
	Name   string
	Values []float64
	Valid  []bool
}

func newColumn(name string, n int) Column {
	return Column{Name: name, Values: make([]float64, n), Valid: make([]bool, n)}
}

func (c *Column) set(i int, v float64) {
	c.Values[i] = v
	c.Valid[i] = true
}

// Indicator computes one or more columns from a bar series. Compute must
// return columns whose length equals the input length; cells that cannot be
// computed yet are left invalid.
type Indicator interface {
	Name() string
	MinWindow() int
	Compute(bars []model.Bar) []Column
}

// Core returns the reduced hand-computed set used when the full catalog is
// not wanted: SMA, EMA, RSI, MACD and Bollinger only.
func Core() []Indicator {
	return []Indicator{
		SMA{Window: 20},
		SMA{Window: 50},
		SMA{Window: 200},
		EMA{Span: 12},
		EMA{Span: 26},
		RSI{Window: 14},
		MACD{Fast: 12, Slow: 26, Signal: 9},
		Bollinger{Window: 20, Mult: 2},
	}
}

// Full returns the complete catalog.
func Full() []Indicator {
	return append(Core(),
		WMA{Window: 20},
		VWMA{Window: 20},
		Stochastic{Window: 14, Smooth: 3},
		CCI{Window: 20},
		WilliamsR{Window: 14},
		ROC{Window: 12},
		Momentum{Window: 10},
		PSY{Window: 12},
		TrueRange{},
		ATR{Window: 14},
		OBV{},
		AccumDist{},
		CMF{Window: 20},
		MFI{Window: 14},
		PVT{},
		PivotPoints{},
	)
}

// Catalog selects an indicator set by name. Unknown names fall back to the
// core set; the fallback is logged so a degraded run is never silent.
func Catalog(set string) (string, []Indicator) {
	switch set {
	case SetFull:
		return SetFull, Full()
	case SetCore:
		return SetCore, Core()
	default:
		log.Printf("[WARN] unknown indicator set %q, falling back to core set", set)
		return SetCore, Core()
	}
}
