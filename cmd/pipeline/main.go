package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/collector"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/config"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/indicator"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/notifier"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/pipeline"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/recorder"
	"github.com/huuquangchungkhoan/QuangvaQuang/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	job := flag.String("job", pipeline.JobAll, "job to run: statements, ratios, technical, or all")
	daemon := flag.Bool("daemon", false, "keep running and rebuild on the daily cron schedule")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	log.Println("[INFO] pipeline starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("USE_MOCK_DATA") == "true" {
		fetcher = &collector.MockFetcher{Universe: []string{"VCB", "FPT", "HPG"}, BasePrice: 100}
	} else {
		fetcher = collector.NewVietcapFetcher(
			cfg.DataSource.BaseURL,
			cfg.DataSource.ListingsURL,
			cfg.DataSource.Origin,
			cfg.DataSource.Referer,
			cfg.DataSource.UserAgent,
			cfg.DataSource.IndexSymbol,
			cfg.Proxy,
		)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init indicator engine
	engine := indicator.NewEngine(cfg.Pipeline.IndicatorSet)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runner := pipeline.NewRunner(cfg, fetcher, engine, rec)

	// Optional run notifications
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		runner.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		log.Println("[INFO] Telegram run notifications enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*daemon {
		if err := runner.Run(ctx, *job); err != nil {
			log.Fatalf("[FATAL] %s job: %v", *job, err)
		}
		log.Println("[INFO] pipeline finished")
		return
	}

	// Daemon mode: rebuild on schedule
	sched := scheduler.NewScheduler(ctx, runner)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing full rebuild now")
		go sched.RunNow()
	}

	log.Println("[INFO] pipeline daemon is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] pipeline stopped")
}
