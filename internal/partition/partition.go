// Package partition groups flat statement records into the
// (report type, year) units the columnar store is laid out by.
package partition

import (
	"log"
	"sort"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// Key identifies one output partition.
type Key struct {
	ReportType string
	Year       string
}

// Year derives the partition year from a period string. Periods start with
// a 4-digit year by format contract ("2023", "2023Q4"); anything shorter is
// invalid and yields "".
func Year(period string) string {
	if len(period) < 4 {
		return ""
	}
	return period[:4]
}

// Split groups records by (report type, year). Records whose period cannot
// yield a year are dropped with a warning; partitioning stays a pure
// function of record content otherwise. Empty groups never appear in the
// result.
func Split(byType map[string][]model.StatementRecord) map[Key][]model.StatementRecord {
	out := make(map[Key][]model.StatementRecord)
	var dropped int
	for reportType, recs := range byType {
		for _, rec := range recs {
			year := Year(rec.Period)
			if year == "" {
				dropped++
				continue
			}
			key := Key{ReportType: reportType, Year: year}
			out[key] = append(out[key], rec)
		}
	}
	if dropped > 0 {
		log.Printf("[WARN] dropped %d records with invalid periods during partitioning", dropped)
	}
	return out
}

// SplitRatios groups wide ratio rows by their year column.
func SplitRatios(rows []model.RatioRow) map[string][]model.RatioRow {
	out := make(map[string][]model.RatioRow)
	var dropped int
	for _, row := range rows {
		if len(row.Year) < 4 {
			dropped++
			continue
		}
		out[row.Year] = append(out[row.Year], row)
	}
	if dropped > 0 {
		log.Printf("[WARN] dropped %d ratio rows with invalid years during partitioning", dropped)
	}
	return out
}

// SortedKeys returns partition keys in a stable report-type-then-year order
// so runs log and write partitions deterministically.
func SortedKeys(parts map[Key][]model.StatementRecord) []Key {
	keys := make([]Key, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ReportType != keys[j].ReportType {
			return keys[i].ReportType < keys[j].ReportType
		}
		return keys[i].Year < keys[j].Year
	})
	return keys
}
