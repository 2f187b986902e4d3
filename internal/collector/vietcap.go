package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// indexCandleLength is the lengthReport used for market indices. The
// upstream API returns no data for indices at large lengthReport values but
// returns full history at small ones, which the fetcher then trims.
const indexCandleLength = 10

// VietcapFetcher implements Fetcher against the Vietcap IQ insight REST API.
type VietcapFetcher struct {
	BaseURL     string
	ListingsURL string
	Origin      string
	Referer     string
	UserAgent   string
	IndexSymbol string
	Client      *http.Client
}

// NewVietcapFetcher creates a new fetcher with optional proxy support.
func NewVietcapFetcher(baseURL, listingsURL, origin, referer, userAgent, indexSymbol, proxyURL string) *VietcapFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &VietcapFetcher{
		BaseURL:     baseURL,
		ListingsURL: listingsURL,
		Origin:      origin,
		Referer:     referer,
		UserAgent:   userAgent,
		IndexSymbol: indexSymbol,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *VietcapFetcher) Name() string { return "vietcap" }

// FetchUniverse downloads the screener listing and extracts the ticker set.
func (f *VietcapFetcher) FetchUniverse(ctx context.Context) ([]string, error) {
	body, err := f.get(ctx, f.ListingsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	var listing struct {
		Stocks []struct {
			Ticker string `json:"ticker"`
		} `json:"stocks"`
		AllSymbols       json.RawMessage     `json:"all_symbols"`
		StocksByIndex    map[string][]string `json:"stocks_by_index"`
		StocksByIndustry map[string][]string `json:"stocks_by_industry"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	var tickers []string
	for _, s := range listing.Stocks {
		if s.Ticker != "" {
			tickers = append(tickers, s.Ticker)
		}
	}
	if len(tickers) == 0 && len(listing.AllSymbols) > 0 {
		tickers = parseLegacySymbols(listing.AllSymbols)
	}
	if len(tickers) == 0 {
		// Last resort: union of index and industry groupings.
		seen := make(map[string]bool)
		for _, group := range listing.StocksByIndex {
			for _, t := range group {
				seen[t] = true
			}
		}
		for _, group := range listing.StocksByIndustry {
			for _, t := range group {
				seen[t] = true
			}
		}
		for t := range seen {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
	}
	return tickers, nil
}

// parseLegacySymbols handles the older listings shape where all_symbols is
// either a plain string list or a list of {symbol} objects.
func parseLegacySymbols(raw json.RawMessage) []string {
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var objects []struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil
	}
	var tickers []string
	for _, o := range objects {
		if o.Symbol != "" {
			tickers = append(tickers, o.Symbol)
		}
	}
	return tickers
}

// FetchStatements returns the raw financial-statements document for a ticker.
func (f *VietcapFetcher) FetchStatements(ctx context.Context, ticker string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/company/%s/financial-statement", f.BaseURL, ticker)
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch statements %s: %w", ticker, err)
	}
	return body, nil
}

// FetchRatios returns the raw ratios document for a ticker.
func (f *VietcapFetcher) FetchRatios(ctx context.Context, ticker string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/company/%s/financial-ratio", f.BaseURL, ticker)
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch ratios %s: %w", ticker, err)
	}
	return body, nil
}

// vcCandle is the expected JSON shape of one price-chart entry.
type vcCandle struct {
	TradingTime  int64   `json:"tradingTime"`
	OpenPrice    float64 `json:"openPrice"`
	HighPrice    float64 `json:"highPrice"`
	LowPrice     float64 `json:"lowPrice"`
	ClosingPrice float64 `json:"closingPrice"`
}

// FetchCandles returns up to length daily bars, oldest first. An
// unsuccessful envelope or an empty candle list yields (nil, nil) so the
// caller can skip the ticker without treating it as an error.
func (f *VietcapFetcher) FetchCandles(ctx context.Context, ticker string, length int) ([]model.Bar, error) {
	reqLength := length
	if ticker == f.IndexSymbol && reqLength > indexCandleLength {
		reqLength = indexCandleLength
	}
	endpoint := fmt.Sprintf("%s/company/%s/price-chart?lengthReport=%d", f.BaseURL, ticker, reqLength)

	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", ticker, err)
	}

	var envelope struct {
		Successful bool       `json:"successful"`
		Data       []vcCandle `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode candles %s: %w", ticker, err)
	}
	if !envelope.Successful || len(envelope.Data) == 0 {
		return nil, nil
	}

	candles := envelope.Data
	// Indices return full history regardless of lengthReport; keep the tail.
	if len(candles) > length {
		candles = candles[len(candles)-length:]
	}

	bars := make([]model.Bar, len(candles))
	for i, c := range candles {
		bars[i] = model.Bar{
			Date:   time.Unix(c.TradingTime, 0).UTC(),
			Open:   c.OpenPrice,
			High:   c.HighPrice,
			Low:    c.LowPrice,
			Close:  c.ClosingPrice,
			Volume: model.DefaultVolume,
		}
	}
	// Ensure chronological order, oldest first.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *VietcapFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if f.Origin != "" {
		req.Header.Set("origin", f.Origin)
	}
	if f.Referer != "" {
		req.Header.Set("referer", f.Referer)
	}
	if f.UserAgent != "" {
		req.Header.Set("user-agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return io.ReadAll(resp.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
