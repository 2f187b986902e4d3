package normalize

import (
	"testing"
)

const sampleStatements = `{
	"ticker": "VNM",
	"sections": {
		"BALANCE_SHEET": {
			"data": {
				"years": [
					{"yearReport": 2023, "bsa1": 1000.5, "bsa2": 2000, "organCode": "VNM", "status": "ok", "note": "text value"}
				],
				"quarters": [
					{"yearReport": 2023, "quarterReport": 4, "bsa1": 250.25, "serverDateTime": "2024-01-01"}
				]
			}
		},
		"INCOME_STATEMENT": {
			"data": {
				"years": [
					{"yearReport": 2023, "isa1": 42}
				]
			}
		}
	},
	"metadata": {
		"BALANCE_SHEET": [{"field": "bsa1", "label": "Total Assets"}]
	}
}`

func TestStatements_MeltsYearsAndQuarters(t *testing.T) {
	byType, err := Statements([]byte(sampleStatements))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bs := byType["BALANCE_SHEET"]
	if len(bs) != 3 {
		t.Fatalf("expected 3 balance sheet records, got %d: %+v", len(bs), bs)
	}
	for _, rec := range bs {
		if rec.Ticker != "VNM" {
			t.Errorf("expected ticker VNM, got %q", rec.Ticker)
		}
		if rec.Field == "organCode" || rec.Field == "status" || rec.Field == "serverDateTime" {
			t.Errorf("deny-listed field %q leaked into output", rec.Field)
		}
		if rec.Field == "note" {
			t.Error("non-numeric field should have been dropped")
		}
	}

	var quarterly int
	for _, rec := range bs {
		if rec.Period == "2023Q4" {
			quarterly++
			if rec.Value != 250.25 {
				t.Errorf("expected quarterly bsa1 = 250.25, got %v", rec.Value)
			}
		}
	}
	if quarterly != 1 {
		t.Errorf("expected 1 quarterly record with period 2023Q4, got %d", quarterly)
	}

	is := byType["INCOME_STATEMENT"]
	if len(is) != 1 || is[0].Period != "2023" || is[0].Value != 42 {
		t.Errorf("unexpected income statement records: %+v", is)
	}
}

func TestStatements_MissingTicker(t *testing.T) {
	byType, err := Statements([]byte(`{"sections": {"BALANCE_SHEET": {"data": {"years": [{"yearReport": 2023, "bsa1": 1}]}}}}`))
	if err != nil {
		t.Fatalf("missing ticker must not be an error, got %v", err)
	}
	if len(byType) != 0 {
		t.Errorf("expected empty result for document without ticker, got %+v", byType)
	}
}

func TestStatements_MalformedDocument(t *testing.T) {
	if _, err := Statements([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestStatements_PeriodSynthesis(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]any
		want string
		ok   bool
	}{
		{"year and quarter numbers", map[string]any{"yearReport": float64(2023), "quarterReport": float64(4)}, "2023Q4", true},
		{"precomposed quarter string", map[string]any{"quarterReport": "2022Q1"}, "2022Q1", true},
		{"quarter only ordinal", map[string]any{"quarterReport": float64(2)}, "2", true},
		{"no quarter", map[string]any{"yearReport": float64(2023)}, "", false},
	}
	for _, tt := range tests {
		got, ok := quarterlyPeriod(tt.row)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: quarterlyPeriod = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMetadata_Extraction(t *testing.T) {
	catalog, err := Metadata([]byte(sampleStatements))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := catalog["BALANCE_SHEET"]; !ok {
		t.Error("expected BALANCE_SHEET field catalog")
	}
	if _, ok := catalog["CASH_FLOW"]; ok {
		t.Error("absent report type should be omitted from catalog")
	}
}
