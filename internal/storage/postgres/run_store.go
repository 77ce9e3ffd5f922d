// Package postgres provides Postgres-backed persistence for run history.
package postgres

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crawlbench/crawlbench/internal/crawler"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// RunStoreConfig controls the Postgres connection pool used for run rows.
type RunStoreConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Close()
}

// RunRecord is one completed benchmark run.
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	Concurrency int
	Summary     crawler.Summary
}

// RunStore writes run-summary rows into Postgres so benchmark results can be
// tracked across runs.
type RunStore struct {
	pool  execCloser
	table string
}

// NewRunStore creates a Postgres-backed RunStore using the provided config.
func NewRunStore(ctx context.Context, cfg RunStoreConfig) (*RunStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "crawl_runs"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &RunStore{pool: pool, table: table}, nil
}

// NewRunStoreWithPool constructs a store from an existing pool (primarily for
// testing).
func NewRunStoreWithPool(pool execCloser, table string) (*RunStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "crawl_runs"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &RunStore{pool: pool, table: table}, nil
}

// Close releases the underlying pool resources.
func (s *RunStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// StoreRun inserts one run-summary row.
//
// Expected schema:
//
//	CREATE TABLE crawl_runs (
//		id UUID PRIMARY KEY,
//		started_at TIMESTAMPTZ NOT NULL,
//		concurrency INT NOT NULL,
//		total_urls INT NOT NULL,
//		successful_fetches INT NOT NULL,
//		failed_fetches INT NOT NULL,
//		total_time_seconds DOUBLE PRECISION NOT NULL,
//		average_time_seconds DOUBLE PRECISION NOT NULL,
//		created_at TIMESTAMPTZ DEFAULT NOW()
//	);
func (s *RunStore) StoreRun(ctx context.Context, rec RunRecord) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("run store is not configured")
	}
	if rec.ID == "" {
		return fmt.Errorf("run id is required")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	started_at,
	concurrency,
	total_urls,
	successful_fetches,
	failed_fetches,
	total_time_seconds,
	average_time_seconds
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, s.table)

	if _, err := s.pool.Exec(ctx, query,
		rec.ID,
		rec.StartedAt,
		rec.Concurrency,
		rec.Summary.TotalURLs,
		rec.Summary.SuccessfulFetches,
		rec.Summary.FailedFetches,
		rec.Summary.TotalTime,
		rec.Summary.AverageTimePerURL,
	); err != nil {
		return fmt.Errorf("insert run row: %w", err)
	}
	return nil
}
