package model

// Report types emitted by the statements normalizer. The order here is the
// order partitions are processed and written in.
var ReportTypes = []string{"BALANCE_SHEET", "INCOME_STATEMENT", "CASH_FLOW", "NOTE"}

// StatementRecord is one flat (ticker, period, field, value) row of the
// financial-statements output. Period always starts with a 4-digit year,
// e.g. "2023" or "2023Q4".
type StatementRecord struct {
	Ticker string
	Period string
	Field  string
	Value  float64
}

// RatioRow is one wide row of the ratios output. Values holds the numeric
// ratio fields keyed by their frontend column name; missing fields are
// zero-filled when the table is materialized so chart scales stay defined.
type RatioRow struct {
	Ticker    string
	Year      string
	Quarter   int64
	RatioType string
	Values    map[string]float64
}
