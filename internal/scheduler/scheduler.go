// Package scheduler runs the nightly full rebuild on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/pipeline"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *pipeline.Runner
	Ctx    context.Context

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *pipeline.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
	}
}

// RegisterAll registers the daily rebuild task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyRebuild); err != nil {
		return fmt.Errorf("register daily rebuild: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the full rebuild immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyRebuild()
}

// dailyRebuild runs the full pipeline. Overlapping triggers are dropped: a
// rebuild that outlasts its cron interval must not race a second writer over
// the same output files.
func (s *Scheduler) dailyRebuild() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] rebuild already in progress, skipping trigger")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("[INFO] running daily rebuild")
	if err := s.Runner.RunAll(s.Ctx); err != nil {
		log.Printf("[ERROR] daily rebuild: %v", err)
	}
}
