package collector

import (
	"context"
	"time"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Per-ticker maps win over the shared defaults; FailTickers simulates
// per-unit fetch failures.
type MockFetcher struct {
	Universe    []string
	Statements  map[string][]byte
	Ratios      map[string][]byte
	Candles     map[string][]model.Bar
	FailTickers map[string]error
	UniverseErr error
	BasePrice   float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchUniverse(_ context.Context) ([]string, error) {
	if m.UniverseErr != nil {
		return nil, m.UniverseErr
	}
	return m.Universe, nil
}

func (m *MockFetcher) FetchStatements(_ context.Context, ticker string) ([]byte, error) {
	if err, ok := m.FailTickers[ticker]; ok {
		return nil, err
	}
	return m.Statements[ticker], nil
}

func (m *MockFetcher) FetchRatios(_ context.Context, ticker string) ([]byte, error) {
	if err, ok := m.FailTickers[ticker]; ok {
		return nil, err
	}
	return m.Ratios[ticker], nil
}

func (m *MockFetcher) FetchCandles(_ context.Context, ticker string, length int) ([]model.Bar, error) {
	if err, ok := m.FailTickers[ticker]; ok {
		return nil, err
	}
	if bars, ok := m.Candles[ticker]; ok {
		return bars, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return GenerateMockBars(base, length), nil
}

// GenerateMockBars builds a deterministic drifting bar series for tests.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: model.DefaultVolume,
		}
	}
	return bars
}
