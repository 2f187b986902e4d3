package arrowio

import (
	"path/filepath"
	"testing"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/collector"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/indicator"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

func TestStatements_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance_sheet", "2023.arrow")
	recs := []model.StatementRecord{
		{Ticker: "VNM", Period: "2023Q4", Field: "bsa1", Value: 1000.5},
		{Ticker: "VNM", Period: "2023Q4", Field: "bsa2", Value: -2.25},
		{Ticker: "FPT", Period: "2023", Field: "bsa1", Value: 0},
	}

	if err := WriteStatements(path, recs); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadStatements(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if len(got) != len(recs) {
		t.Fatalf("row count changed: wrote %d, read %d", len(recs), len(got))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("row %d changed: wrote %+v, read %+v", i, recs[i], got[i])
		}
	}
}

func TestRatios_RoundTripAndZeroFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2023.arrow")
	rows := []model.RatioRow{
		{Ticker: "VNM", Year: "2023", Quarter: 4, RatioType: "QUARTER",
			Values: map[string]float64{"pe": 15.2, "market_cap": 1e9}},
		{Ticker: "FPT", Year: "2023", Quarter: 4, RatioType: "QUARTER",
			Values: map[string]float64{"pe": 20.1, "roe": 0.18}},
	}
	cols := RatioColumns(rows)

	if err := WriteRatios(path, rows, cols); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, gotCols, err := ReadRatios(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if len(gotCols) != len(cols) {
		t.Fatalf("column set changed: wrote %v, read %v", cols, gotCols)
	}
	for i := range cols {
		if gotCols[i] != cols[i] {
			t.Errorf("column %d changed: wrote %q, read %q", i, cols[i], gotCols[i])
		}
	}
	if len(got) != len(rows) {
		t.Fatalf("row count changed: wrote %d, read %d", len(rows), len(got))
	}
	// Missing value columns zero-fill on write, so the read-back row carries
	// every column.
	if got[0].Values["roe"] != 0 {
		t.Errorf("expected zero-filled roe for first row, got %v", got[0].Values["roe"])
	}
	if got[1].Values["market_cap"] != 0 {
		t.Errorf("expected zero-filled market_cap for second row, got %v", got[1].Values["market_cap"])
	}
	if got[0].Values["pe"] != 15.2 || got[1].Values["pe"] != 20.1 {
		t.Errorf("pe values changed: %v, %v", got[0].Values["pe"], got[1].Values["pe"])
	}
}

func TestTechnical_RoundTripPreservesNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "technical_analysis.arrow")
	engine := indicator.NewEngine(indicator.SetCore)

	table, err := engine.Compute("AAA", collector.GenerateMockBars(100, 60))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	other, err := engine.Compute("BBB", collector.GenerateMockBars(50, 40))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if err := table.Append(other); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := WriteTechnical(path, table); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadTechnical(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.NumRows() != table.NumRows() {
		t.Fatalf("row count changed: wrote %d, read %d", table.NumRows(), got.NumRows())
	}
	if len(got.Indicators) != len(table.Indicators) {
		t.Fatalf("column set changed: wrote %d indicator columns, read %d", len(table.Indicators), len(got.Indicators))
	}
	for c := range table.Indicators {
		if got.Indicators[c].Name != table.Indicators[c].Name {
			t.Errorf("column %d renamed: %q vs %q", c, table.Indicators[c].Name, got.Indicators[c].Name)
		}
		for i := 0; i < table.NumRows(); i++ {
			if got.Indicators[c].Valid[i] != table.Indicators[c].Valid[i] {
				t.Fatalf("null mask changed for %s at row %d", table.Indicators[c].Name, i)
			}
			if table.Indicators[c].Valid[i] && got.Indicators[c].Values[i] != table.Indicators[c].Values[i] {
				t.Errorf("value changed for %s at row %d", table.Indicators[c].Name, i)
			}
		}
	}
	for i := 0; i < table.NumRows(); i++ {
		if !got.Date[i].Equal(table.Date[i]) {
			t.Errorf("date changed at row %d: %v vs %v", i, table.Date[i], got.Date[i])
		}
		if got.Ticker[i] != table.Ticker[i] || got.Volume[i] != table.Volume[i] {
			t.Errorf("identity columns changed at row %d", i)
		}
	}
}
