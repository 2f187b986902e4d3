package indicator

import (
	"testing"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/collector"
)

func TestEngine_ComputeFullSet(t *testing.T) {
	engine := NewEngine(SetFull)
	bars := collector.GenerateMockBars(100, 210)

	table, err := engine.Compute("AAA", bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.NumRows() != 210 {
		t.Fatalf("expected 210 rows, got %d", table.NumRows())
	}
	for _, col := range table.Indicators {
		if len(col.Values) != 210 || len(col.Valid) != 210 {
			t.Errorf("column %q length mismatch", col.Name)
		}
	}

	// 210 bars is enough for SMA_200 to be defined at the tail.
	var sma200 *Column
	for i := range table.Indicators {
		if table.Indicators[i].Name == "SMA_200" {
			sma200 = &table.Indicators[i]
		}
	}
	if sma200 == nil {
		t.Fatal("full set must include SMA_200")
	}
	if !sma200.Valid[209] {
		t.Error("SMA_200 should be defined at the tail of a 210-bar series")
	}
	if sma200.Valid[198] {
		t.Error("SMA_200 should be null before 200 bars accumulate")
	}
}

func TestEngine_EmptySeriesSkipped(t *testing.T) {
	engine := NewEngine(SetCore)
	table, err := engine.Compute("AAA", nil)
	if err != nil {
		t.Fatalf("empty series must not be an error, got %v", err)
	}
	if table != nil {
		t.Error("empty series should yield a nil table")
	}
}

func TestEngine_CoreSetSelection(t *testing.T) {
	core := NewEngine(SetCore)
	if core.SetName() != SetCore {
		t.Errorf("expected core set, got %q", core.SetName())
	}
	// Unknown set names fall back to core rather than failing silently.
	fallback := NewEngine("exotic")
	if fallback.SetName() != SetCore {
		t.Errorf("unknown set should fall back to core, got %q", fallback.SetName())
	}

	bars := collector.GenerateMockBars(100, 50)
	table, err := core.Compute("BBB", bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Core set: SMA x3 + EMA x2 + RSI + MACD x3 + Bollinger x3.
	if got := len(table.Indicators); got != 12 {
		t.Errorf("expected 12 core indicator columns, got %d", got)
	}
}

func TestTable_AppendMergesRows(t *testing.T) {
	engine := NewEngine(SetCore)
	a, err := engine.Compute("AAA", collector.GenerateMockBars(100, 30))
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Compute("BBB", collector.GenerateMockBars(200, 40))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append(b); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if a.NumRows() != 70 {
		t.Errorf("expected 70 rows after append, got %d", a.NumRows())
	}
	for _, col := range a.Indicators {
		if len(col.Values) != 70 {
			t.Errorf("column %q not extended by append", col.Name)
		}
	}
}

func TestTable_AppendColumnMismatch(t *testing.T) {
	full, err := NewEngine(SetFull).Compute("AAA", collector.GenerateMockBars(100, 30))
	if err != nil {
		t.Fatal(err)
	}
	core, err := NewEngine(SetCore).Compute("BBB", collector.GenerateMockBars(100, 30))
	if err != nil {
		t.Fatal(err)
	}
	if err := full.Append(core); err == nil {
		t.Error("appending tables from different catalogs must fail")
	}
}
