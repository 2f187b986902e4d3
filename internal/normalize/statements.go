// Package normalize converts raw per-ticker provider documents into the
// flat records consumed by the partition builder. All functions are pure;
// a document that cannot be used yields either an empty result (missing
// identifier) or an error that the caller logs before skipping the
// document.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// denyList holds bookkeeping keys that never become output fields: server
// timestamps, status codes, and identifiers that are captured elsewhere.
var denyList = map[string]bool{
	"organCode":      true,
	"ticker":         true,
	"createDate":     true,
	"updateDate":     true,
	"yearReport":     true,
	"quarterReport":  true,
	"lengthReport":   true,
	"serverDateTime": true,
	"status":         true,
	"message":        true,
	"code":           true,
	"msg":            true,
	"exception":      true,
	"successful":     true,
}

type statementsDoc struct {
	Ticker   string                     `json:"ticker"`
	Sections map[string]statementsSect  `json:"sections"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

type statementsSect struct {
	Data struct {
		Years    []map[string]any `json:"years"`
		Quarters []map[string]any `json:"quarters"`
	} `json:"data"`
}

// Statements melts one financial-statements document into flat records
// grouped by report type. A document without a ticker yields an empty map
// and no error.
func Statements(doc []byte) (map[string][]model.StatementRecord, error) {
	var parsed statementsDoc
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse statements document: %w", err)
	}
	if parsed.Ticker == "" {
		return map[string][]model.StatementRecord{}, nil
	}

	out := make(map[string][]model.StatementRecord)
	for _, reportType := range model.ReportTypes {
		section, ok := parsed.Sections[reportType]
		if !ok {
			continue
		}
		var recs []model.StatementRecord
		for _, row := range section.Data.Years {
			period, ok := yearlyPeriod(row)
			if !ok {
				continue
			}
			recs = append(recs, meltRow(parsed.Ticker, period, row)...)
		}
		for _, row := range section.Data.Quarters {
			period, ok := quarterlyPeriod(row)
			if !ok {
				continue
			}
			recs = append(recs, meltRow(parsed.Ticker, period, row)...)
		}
		if len(recs) > 0 {
			out[reportType] = recs
		}
	}
	return out, nil
}

// meltRow emits one record per (field, numeric value) pair in a period row.
// Only JSON numbers survive; the statements pipeline never zero-fills.
func meltRow(ticker, period string, row map[string]any) []model.StatementRecord {
	var recs []model.StatementRecord
	for field, value := range row {
		if denyList[field] {
			continue
		}
		num, ok := value.(float64)
		if !ok {
			continue
		}
		recs = append(recs, model.StatementRecord{
			Ticker: ticker,
			Period: period,
			Field:  field,
			Value:  num,
		})
	}
	return recs
}

func yearlyPeriod(row map[string]any) (string, bool) {
	year, ok := periodComponent(row["yearReport"])
	if !ok {
		return "", false
	}
	return year, true
}

// quarterlyPeriod builds a "YYYYQn" period. Providers report the quarter as
// a bare ordinal alongside yearReport; when yearReport is absent the raw
// quarter value is used as-is so documents that already carry a composed
// period keep working.
func quarterlyPeriod(row map[string]any) (string, bool) {
	quarter, ok := periodComponent(row["quarterReport"])
	if !ok {
		return "", false
	}
	year, ok := periodComponent(row["yearReport"])
	if !ok {
		return quarter, true
	}
	return year + "Q" + quarter, true
}

// periodComponent renders a JSON number or string period part as a string.
func periodComponent(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		return strconv.FormatInt(int64(t), 10), true
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	default:
		return "", false
	}
}
