package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchUniverseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "screener stocks",
			body: `{"stocks": [{"ticker": "VCB"}, {"ticker": "FPT"}, {"ticker": ""}]}`,
			want: []string{"VCB", "FPT"},
		},
		{
			name: "legacy plain list",
			body: `{"all_symbols": ["HPG", "SSI"]}`,
			want: []string{"HPG", "SSI"},
		},
		{
			name: "legacy object list",
			body: `{"all_symbols": [{"symbol": "MWG"}, {"symbol": "VNM"}]}`,
			want: []string{"MWG", "VNM"},
		},
		{
			name: "grouping union fallback",
			body: `{"stocks_by_index": {"VN30": ["VCB", "FPT"]}, "stocks_by_industry": {"Steel": ["HPG", "FPT"]}}`,
			want: []string{"FPT", "HPG", "VCB"},
		},
		{
			name: "empty listing",
			body: `{}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			f := NewVietcapFetcher("", srv.URL, "", "", "", "VNINDEX", "")
			got, err := f.FetchUniverse(context.Background())
			if err != nil {
				t.Fatalf("FetchUniverse: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ticker %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFetchCandles(t *testing.T) {
	base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Serve newest first to exercise the chronological sort.
		fmt.Fprintf(w, `{"successful": true, "data": [
			{"tradingTime": %d, "openPrice": 101, "highPrice": 103, "lowPrice": 100, "closingPrice": 102},
			{"tradingTime": %d, "openPrice": 100, "highPrice": 102, "lowPrice": 99, "closingPrice": 101}
		]}`, base.AddDate(0, 0, 1).Unix(), base.Unix())
	}))
	defer srv.Close()

	f := NewVietcapFetcher(srv.URL, "", "", "", "", "VNINDEX", "")
	bars, err := f.FetchCandles(context.Background(), "VCB", 210)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if !bars[0].Date.Equal(base) || !bars[1].Date.After(bars[0].Date) {
		t.Errorf("bars not in chronological order: %v, %v", bars[0].Date, bars[1].Date)
	}
	if bars[0].Close != 101 || bars[1].Close != 102 {
		t.Errorf("closes = %v, %v, want 101, 102", bars[0].Close, bars[1].Close)
	}
	for _, b := range bars {
		if b.Volume != 1_000_000 {
			t.Errorf("volume = %d, want synthetic 1000000", b.Volume)
		}
	}
}

func TestFetchCandlesUnsuccessfulEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"successful": false, "data": []}`)
	}))
	defer srv.Close()

	f := NewVietcapFetcher(srv.URL, "", "", "", "", "VNINDEX", "")
	bars, err := f.FetchCandles(context.Background(), "XYZ", 210)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if bars != nil {
		t.Errorf("got %d bars, want nil for unsuccessful envelope", len(bars))
	}
}

func TestFetchCandlesIndexTrim(t *testing.T) {
	var gotLength string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.URL.Query().Get("lengthReport")
		// Full history comes back regardless of the requested length.
		fmt.Fprint(w, `{"successful": true, "data": [`)
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 30; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"tradingTime": %d, "openPrice": 1000, "highPrice": 1010, "lowPrice": 990, "closingPrice": 1005}`,
				base.AddDate(0, 0, i).Unix())
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	f := NewVietcapFetcher(srv.URL, "", "", "", "", "VNINDEX", "")
	bars, err := f.FetchCandles(context.Background(), "VNINDEX", 20)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if gotLength != "10" {
		t.Errorf("index lengthReport = %s, want the small index request length 10", gotLength)
	}
	if len(bars) != 20 {
		t.Errorf("got %d bars, want tail of 20", len(bars))
	}
	// The tail must be the newest bars.
	wantLast := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 29)
	if !bars[len(bars)-1].Date.Equal(wantLast) {
		t.Errorf("last bar %v, want %v", bars[len(bars)-1].Date, wantLast)
	}
}

func TestFetchStatementsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewVietcapFetcher(srv.URL, "", "", "", "", "VNINDEX", "")
	if _, err := f.FetchStatements(context.Background(), "VCB"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
