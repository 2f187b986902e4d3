package indicator

import (
	"fmt"
	"log"
	"time"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// Table is the columnar result of indicator computation: the original OHLCV
// columns plus one column per catalog output. Per-ticker tables produced by
// the same engine share a column set and can be appended into the single
// technical-analysis output table.
type Table struct {
	Ticker     []string
	Date       []time.Time
	Open       []float64
	High       []float64
	Low        []float64
	Close      []float64
	Volume     []int64
	Indicators []Column
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Ticker)
}

// ColumnNames returns the indicator column names in output order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Indicators))
	for i, c := range t.Indicators {
		names[i] = c.Name
	}
	return names
}

// Append merges another table produced with the same catalog. Column sets
// must match exactly; partition contents are order-independent, so append
// order carries no meaning.
func (t *Table) Append(other *Table) error {
	if other.NumRows() == 0 {
		return nil
	}
	if len(t.Indicators) != len(other.Indicators) {
		return fmt.Errorf("column count mismatch: %d vs %d", len(t.Indicators), len(other.Indicators))
	}
	for i := range t.Indicators {
		if t.Indicators[i].Name != other.Indicators[i].Name {
			return fmt.Errorf("column %d mismatch: %q vs %q", i, t.Indicators[i].Name, other.Indicators[i].Name)
		}
	}
	t.Ticker = append(t.Ticker, other.Ticker...)
	t.Date = append(t.Date, other.Date...)
	t.Open = append(t.Open, other.Open...)
	t.High = append(t.High, other.High...)
	t.Low = append(t.Low, other.Low...)
	t.Close = append(t.Close, other.Close...)
	t.Volume = append(t.Volume, other.Volume...)
	for i := range t.Indicators {
		t.Indicators[i].Values = append(t.Indicators[i].Values, other.Indicators[i].Values...)
		t.Indicators[i].Valid = append(t.Indicators[i].Valid, other.Indicators[i].Valid...)
	}
	return nil
}

// Engine runs a fixed indicator catalog over per-ticker bar series.
type Engine struct {
	set     string
	catalog []Indicator
}

// NewEngine selects the catalog by set name ("full" or "core").
func NewEngine(set string) *Engine {
	name, catalog := Catalog(set)
	log.Printf("[INFO] indicator engine using %s set (%d indicators)", name, len(catalog))
	return &Engine{set: name, catalog: catalog}
}

// SetName reports which indicator set the engine is running with.
func (e *Engine) SetName() string { return e.set }

// Compute runs the catalog over one ticker's time-ordered bars. Empty input
// yields a nil table and no error (the ticker is skipped, not zero-filled).
// A panicking indicator fails the ticker, never the batch.
func (e *Engine) Compute(ticker string, bars []model.Bar) (t *Table, err error) {
	if len(bars) == 0 {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = fmt.Errorf("indicator computation for %s panicked: %v", ticker, r)
		}
	}()

	n := len(bars)
	table := &Table{
		Ticker: make([]string, n),
		Date:   make([]time.Time, n),
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]int64, n),
	}
	for i, b := range bars {
		table.Ticker[i] = ticker
		table.Date[i] = b.Date
		table.Open[i] = b.Open
		table.High[i] = b.High
		table.Low[i] = b.Low
		table.Close[i] = b.Close
		table.Volume[i] = b.Volume
	}

	for _, ind := range e.catalog {
		for _, col := range ind.Compute(bars) {
			if len(col.Values) != n || len(col.Valid) != n {
				return nil, fmt.Errorf("indicator %s column %s has %d values for %d bars", ind.Name(), col.Name, len(col.Values), n)
			}
			table.Indicators = append(table.Indicators, col)
		}
	}
	return table, nil
}
