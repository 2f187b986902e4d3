package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// ratioKeyMap translates upstream field names to the stable column
// vocabulary the frontend consumes. Unmapped keys pass through unchanged so
// new upstream fields surface without a schema change here.
var ratioKeyMap = map[string]string{
	"marketCap":            "market_cap",
	"pe":                   "pe",
	"pb":                   "pb",
	"roe":                  "roe",
	"roa":                  "roa",
	"evToEbitda":           "ev_ebitda",
	"dividendYield":        "dividend_yield",
	"afterTaxProfitMargin": "net_margin",
	"grossMargin":          "gross_margin",
	"debtToEquity":         "debt_to_equity",
	"currentRatio":         "current_ratio",
	"quickRatio":           "quick_ratio",
	"priceToCashFlow":      "price_to_cash_flow",
	"roic":                 "roic",
	"assetTurnover":        "asset_turnover",
	"ebitMargin":           "ebit_margin",
	"preTaxProfitMargin":   "pre_tax_margin",
	"inventoryTurnover":    "inventory_turnover",
	"receivablesTurnover":  "receivables_turnover",
}

// ratioExclude holds stat-entry keys handled structurally or dropped.
var ratioExclude = map[string]bool{
	"year":      true,
	"quarter":   true,
	"ratioType": true,
	"ticker":    true,
	"organCode": true,
	"id":        true,
}

type ratiosDoc struct {
	Symbol         string           `json:"symbol"`
	FinancialStats []map[string]any `json:"financial_stats"`
}

// Ratios melts one ratios document into wide rows. Missing or empty values
// are recorded as an explicit 0.0 so bubble-chart scales stay well-defined;
// non-numeric strings are dropped. A document without a symbol yields an
// empty result and no error.
func Ratios(doc []byte) ([]model.RatioRow, error) {
	var parsed ratiosDoc
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse ratios document: %w", err)
	}
	if parsed.Symbol == "" {
		return nil, nil
	}

	var rows []model.RatioRow
	for _, stat := range parsed.FinancialStats {
		row := model.RatioRow{
			Ticker:    parsed.Symbol,
			Year:      statYear(stat["year"]),
			Quarter:   statQuarter(stat["quarter"]),
			RatioType: statString(stat["ratioType"]),
			Values:    make(map[string]float64),
		}
		for key, value := range stat {
			if ratioExclude[key] {
				continue
			}
			name := key
			if mapped, ok := ratioKeyMap[key]; ok {
				name = mapped
			}
			num, ok := coerceFloat(value)
			if !ok {
				continue
			}
			row.Values[name] = num
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// coerceFloat applies the ratios coercion policy: numbers pass through,
// clean numeric strings parse, nil and empty strings become explicit zero,
// everything else is dropped.
func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0.0, true
	case float64:
		return t, true
	case string:
		if t == "" {
			return 0.0, true
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		return 0, false
	default:
		return 0, false
	}
}

func statYear(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case string:
		return t
	default:
		return ""
	}
}

func statQuarter(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func statString(v any) string {
	s, _ := v.(string)
	return s
}
