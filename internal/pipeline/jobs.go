package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/arrowio"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/indicator"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/normalize"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/partition"
)

// RunStatements rebuilds the statement store: every ticker's financial
// statements, melted to flat records and partitioned by report type and
// year. The metadata catalog is captured from the first document that
// yields records.
func (r *Runner) RunStatements(ctx context.Context) (*model.RunSummary, error) {
	startedAt := time.Now()
	log.Printf("[INFO] starting statements run")

	tickers, err := r.universe(ctx)
	if err != nil {
		return nil, err
	}

	track := newTracker(r.ProgressEvery)
	var mu sync.Mutex
	merged := make(map[string][]model.StatementRecord)
	var metadataDoc []byte

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, ticker := range tickers {
		g.Go(func() error {
			doc, err := r.Fetcher.FetchStatements(gctx, ticker)
			if err != nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusFailed, Err: err})
				return nil
			}
			if doc == nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusSkipped})
				return nil
			}
			byType, err := normalize.Statements(doc)
			if err != nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusFailed, Err: err})
				return nil
			}
			rows := 0
			for _, recs := range byType {
				rows += len(recs)
			}
			if rows == 0 {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusSkipped})
				return nil
			}
			mu.Lock()
			for reportType, recs := range byType {
				merged[reportType] = append(merged[reportType], recs...)
			}
			if metadataDoc == nil {
				metadataDoc = doc
			}
			mu.Unlock()
			track.report(model.Outcome{Ticker: ticker, Status: model.StatusOK, Rows: rows})
			return nil
		})
	}
	g.Wait()

	summary := track.summarize(JobStatements, startedAt)
	total := 0
	for _, recs := range merged {
		total += len(recs)
	}
	if total == 0 {
		return summary, fmt.Errorf("no statement records extracted from %d tickers", len(tickers))
	}

	if metadataDoc != nil {
		catalog, err := normalize.Metadata(metadataDoc)
		if err != nil {
			log.Printf("[WARN] metadata extraction: %v", err)
		} else if err := normalize.WriteMetadata(filepath.Join(r.OutDir, r.MetadataFile), catalog); err != nil {
			log.Printf("[ERROR] write metadata: %v", err)
		} else {
			log.Printf("[INFO] wrote field catalog with %d report types", len(catalog))
		}
	}

	parts := partition.Split(merged)
	for _, key := range partition.SortedKeys(parts) {
		recs := parts[key]
		path := filepath.Join(r.OutDir, strings.ToLower(key.ReportType), key.Year+".arrow")
		if err := arrowio.WriteStatements(path, recs); err != nil {
			return summary, fmt.Errorf("write partition %s/%s: %w", key.ReportType, key.Year, err)
		}
		summary.Partitions++
		summary.RowsWritten += len(recs)
	}

	r.finish(ctx, summary)
	return summary, nil
}

// RunRatios rebuilds the financial-ratio store, partitioned by year. All
// year partitions share one value-column set, derived from the union of
// ratio names observed across the whole universe.
func (r *Runner) RunRatios(ctx context.Context) (*model.RunSummary, error) {
	startedAt := time.Now()
	log.Printf("[INFO] starting ratios run")

	tickers, err := r.universe(ctx)
	if err != nil {
		return nil, err
	}

	track := newTracker(r.ProgressEvery)
	var mu sync.Mutex
	var merged []model.RatioRow

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, ticker := range tickers {
		g.Go(func() error {
			doc, err := r.Fetcher.FetchRatios(gctx, ticker)
			if err != nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusFailed, Err: err})
				return nil
			}
			if doc == nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusSkipped})
				return nil
			}
			rows, err := normalize.Ratios(doc)
			if err != nil {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusFailed, Err: err})
				return nil
			}
			if len(rows) == 0 {
				track.report(model.Outcome{Ticker: ticker, Status: model.StatusSkipped})
				return nil
			}
			mu.Lock()
			merged = append(merged, rows...)
			mu.Unlock()
			track.report(model.Outcome{Ticker: ticker, Status: model.StatusOK, Rows: len(rows)})
			return nil
		})
	}
	g.Wait()

	summary := track.summarize(JobRatios, startedAt)
	if len(merged) == 0 {
		return summary, fmt.Errorf("no ratio rows extracted from %d tickers", len(tickers))
	}

	columns := arrowio.RatioColumns(merged)
	for year, rows := range partition.SplitRatios(merged) {
		path := filepath.Join(r.OutDir, "ratios", year+".arrow")
		if err := arrowio.WriteRatios(path, rows, columns); err != nil {
			return summary, fmt.Errorf("write ratio partition %s: %w", year, err)
		}
		summary.Partitions++
		summary.RowsWritten += len(rows)
	}

	r.finish(ctx, summary)
	return summary, nil
}

// RunTechnical rebuilds the technical-analysis table: daily candles for the
// index plus every ticker, run through the indicator catalog and merged
// into a single output file.
func (r *Runner) RunTechnical(ctx context.Context) (*model.RunSummary, error) {
	startedAt := time.Now()
	log.Printf("[INFO] starting technical run (%s indicator set)", r.Engine.SetName())

	tickers, err := r.universe(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(tickers)+1)
	if r.IndexSymbol != "" {
		symbols = append(symbols, r.IndexSymbol)
	}
	symbols = append(symbols, tickers...)

	track := newTracker(r.ProgressEvery)
	var mu sync.Mutex
	var merged *indicator.Table

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, symbol := range symbols {
		g.Go(func() error {
			bars, err := r.Fetcher.FetchCandles(gctx, symbol, r.CandleLength)
			if err != nil {
				track.report(model.Outcome{Ticker: symbol, Status: model.StatusFailed, Err: err})
				return nil
			}
			if len(bars) == 0 {
				track.report(model.Outcome{Ticker: symbol, Status: model.StatusSkipped})
				return nil
			}
			table, err := r.Engine.Compute(symbol, bars)
			if err != nil {
				track.report(model.Outcome{Ticker: symbol, Status: model.StatusFailed, Err: err})
				return nil
			}
			if table.NumRows() == 0 {
				track.report(model.Outcome{Ticker: symbol, Status: model.StatusSkipped})
				return nil
			}
			mu.Lock()
			if merged == nil {
				merged = table
			} else if err := merged.Append(table); err != nil {
				mu.Unlock()
				track.report(model.Outcome{Ticker: symbol, Status: model.StatusFailed, Err: err})
				return nil
			}
			mu.Unlock()
			track.report(model.Outcome{Ticker: symbol, Status: model.StatusOK, Rows: table.NumRows()})
			return nil
		})
	}
	g.Wait()

	summary := track.summarize(JobTechnical, startedAt)
	summary.IndicatorSet = r.Engine.SetName()
	if merged.NumRows() == 0 {
		return summary, fmt.Errorf("no candle data for any of %d symbols", len(symbols))
	}

	path := filepath.Join(r.OutDir, r.TechnicalFile)
	if err := arrowio.WriteTechnical(path, merged); err != nil {
		return summary, fmt.Errorf("write technical table: %w", err)
	}
	summary.Partitions = 1
	summary.RowsWritten = merged.NumRows()

	r.finish(ctx, summary)
	return summary, nil
}
