package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// SQLiteRecorder persists run summaries to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the pipeline writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			job           TEXT,
			processed     INTEGER,
			succeeded     INTEGER,
			failed        INTEGER,
			skipped       INTEGER,
			rows_written  INTEGER,
			partitions    INTEGER,
			indicator_set TEXT,
			elapsed_ms    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON pipeline_runs(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one run summary row.
func (r *SQLiteRecorder) RecordRun(summary *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO pipeline_runs
		(timestamp, job, processed, succeeded, failed, skipped, rows_written, partitions, indicator_set, elapsed_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), summary.Job,
		summary.Processed, summary.Succeeded, summary.Failed, summary.Skipped,
		summary.RowsWritten, summary.Partitions, summary.IndicatorSet,
		summary.Elapsed.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
