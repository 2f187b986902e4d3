package collector

import (
	"context"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// Fetcher defines the interface for fetching raw per-ticker documents.
// FetchStatements and FetchRatios return the raw JSON body so the
// normalizer owns all parsing; a nil document with a nil error means the
// provider had nothing for that ticker.
type Fetcher interface {
	FetchUniverse(ctx context.Context) ([]string, error)
	FetchStatements(ctx context.Context, ticker string) ([]byte, error)
	FetchRatios(ctx context.Context, ticker string) ([]byte, error)
	FetchCandles(ctx context.Context, ticker string, length int) ([]model.Bar, error)
	Name() string
}
