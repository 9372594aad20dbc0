package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

type Config struct {
	Path        string
	BusyTimeout time.Duration
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extract_jobs (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	format         TEXT NOT NULL,
	status         TEXT NOT NULL,
	ocr_text       TEXT NOT NULL DEFAULT '',
	raw_response   TEXT NOT NULL DEFAULT '',
	error_message  TEXT NOT NULL DEFAULT '',
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bill_records (
	id             TEXT PRIMARY KEY,
	job_id         TEXT NOT NULL REFERENCES extract_jobs(id),
	source_path    TEXT NOT NULL,
	bill_number    TEXT NOT NULL,
	bill_date      TEXT NOT NULL,
	bill_time      TEXT NOT NULL,
	bill_amount    TEXT NOT NULL,
	bill_category  TEXT NOT NULL,
	suspicious     INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_records_date ON bill_records(bill_date);
`

// Open opens (or creates) the sqlite database and applies the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening database", "path", cfg.Path)

	dsn := cfg.Path
	if cfg.BusyTimeout > 0 {
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(%d)", cfg.Path, cfg.BusyTimeout.Milliseconds())
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}
	// sqlite allows a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		logger.Error("failed to apply schema", "error", err)
		_ = db.Close()
		return nil, err
	}

	logger.Info("database ready")
	return db, nil
}

// Close closes the database gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database closed")
}

// HealthCheck pings the database to catch path or locking issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}
