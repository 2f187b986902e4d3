// Package pipeline orchestrates full-universe rebuild runs: fetch and
// normalize (or compute indicators) under bounded parallelism, merge, then
// partition and write the columnar store in a single sequenced step.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/collector"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/config"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/indicator"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/notifier"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/recorder"
)

// Job names accepted by Run.
const (
	JobStatements = "statements"
	JobRatios     = "ratios"
	JobTechnical  = "technical"
	JobAll        = "all"
)

// Runner drives pipeline runs over the instrument universe.
type Runner struct {
	Fetcher       collector.Fetcher
	Engine        *indicator.Engine
	Recorder      recorder.Recorder
	Notifier      *notifier.TelegramNotifier
	OutDir        string
	TechnicalFile string
	MetadataFile  string
	Workers       int
	ProgressEvery int
	CandleLength  int
	IndexSymbol   string
}

// NewRunner wires a runner from configuration.
func NewRunner(cfg *config.Config, fetcher collector.Fetcher, engine *indicator.Engine, rec recorder.Recorder) *Runner {
	return &Runner{
		Fetcher:       fetcher,
		Engine:        engine,
		Recorder:      rec,
		OutDir:        cfg.Output.Dir,
		TechnicalFile: cfg.Output.TechnicalFile,
		MetadataFile:  cfg.Output.MetadataFile,
		Workers:       cfg.Pipeline.Workers,
		ProgressEvery: cfg.Pipeline.ProgressEvery,
		CandleLength:  cfg.Pipeline.CandleLength,
		IndexSymbol:   cfg.DataSource.IndexSymbol,
	}
}

// Run executes one named job. Per-instrument failures never fail a run;
// only systemic conditions (no universe, nothing extracted at all) do.
func (r *Runner) Run(ctx context.Context, job string) error {
	switch job {
	case JobStatements:
		_, err := r.RunStatements(ctx)
		return err
	case JobRatios:
		_, err := r.RunRatios(ctx)
		return err
	case JobTechnical:
		_, err := r.RunTechnical(ctx)
		return err
	case JobAll:
		return r.RunAll(ctx)
	default:
		return fmt.Errorf("unknown job %q", job)
	}
}

// RunAll executes every job, continuing past systemic failures of earlier
// jobs so one broken upstream endpoint does not blank the whole store.
func (r *Runner) RunAll(ctx context.Context) error {
	var errs []error
	if _, err := r.RunStatements(ctx); err != nil {
		log.Printf("[ERROR] statements job: %v", err)
		errs = append(errs, fmt.Errorf("statements: %w", err))
	}
	if _, err := r.RunRatios(ctx); err != nil {
		log.Printf("[ERROR] ratios job: %v", err)
		errs = append(errs, fmt.Errorf("ratios: %w", err))
	}
	if _, err := r.RunTechnical(ctx); err != nil {
		log.Printf("[ERROR] technical job: %v", err)
		errs = append(errs, fmt.Errorf("technical: %w", err))
	}
	return errors.Join(errs...)
}

// universe fetches the instrument list; an empty universe is systemic.
func (r *Runner) universe(ctx context.Context) ([]string, error) {
	tickers, err := r.Fetcher.FetchUniverse(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch universe: %w", err)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("universe is empty")
	}
	log.Printf("[INFO] universe: %d tickers (source: %s)", len(tickers), r.Fetcher.Name())
	return tickers, nil
}

// tracker collects per-unit outcomes and emits progress at a fixed
// cadence. All mutation happens under one mutex; workers share nothing
// else.
type tracker struct {
	mu       sync.Mutex
	every    int
	outcomes []model.Outcome
}

func newTracker(every int) *tracker {
	return &tracker{every: every}
}

func (t *tracker) report(o model.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes = append(t.outcomes, o)
	if o.Status == model.StatusFailed && o.Err != nil {
		log.Printf("[WARN] %s: %v", o.Ticker, o.Err)
	}
	if t.every > 0 && len(t.outcomes)%t.every == 0 {
		succeeded := 0
		for _, oc := range t.outcomes {
			if oc.Status == model.StatusOK {
				succeeded++
			}
		}
		log.Printf("[INFO] progress: %d processed, %d successful", len(t.outcomes), succeeded)
	}
}

// summarize folds outcomes into a run summary.
func (t *tracker) summarize(job string, startedAt time.Time) *model.RunSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &model.RunSummary{Job: job, StartedAt: startedAt, Elapsed: time.Since(startedAt)}
	for _, o := range t.outcomes {
		s.Processed++
		switch o.Status {
		case model.StatusOK:
			s.Succeeded++
		case model.StatusSkipped:
			s.Skipped++
		case model.StatusFailed:
			s.Failed++
		}
	}
	return s
}

// finish logs the summary, records it in run history, and notifies the
// operator chat when one is configured.
func (r *Runner) finish(ctx context.Context, s *model.RunSummary) {
	log.Printf("[INFO] %s run complete: processed=%d succeeded=%d failed=%d skipped=%d rows=%d partitions=%d elapsed=%s",
		s.Job, s.Processed, s.Succeeded, s.Failed, s.Skipped, s.RowsWritten, s.Partitions, s.Elapsed.Round(time.Millisecond))
	if err := r.Recorder.RecordRun(s); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	if r.Notifier != nil {
		if err := r.Notifier.SendWithRetry(ctx, notifier.FormatRunSummary(s), 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
	}
}
