// Package sqlite implements the sample repository on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
	"github.com/lromero74/metrics-core/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.SampleRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/metrics.db" // Default path
	}

	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			err = fmt.Errorf("failed to create data directory '%s': %w", dir, err)
			cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		metric TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		ts TIMESTAMP NOT NULL,
		value REAL NOT NULL,
		UNIQUE (metric, ts)
	);
	CREATE INDEX IF NOT EXISTS idx_samples_metric_ts ON samples (metric, ts);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrQueryFailed, err)
	}
	return nil
}

// SaveSamples inserts a batch of samples inside one transaction, skipping rows
// that already exist for the metric+timestamp pair.
func (r *Repository) SaveSamples(ctx context.Context, metric string, unit domain.Unit, samples []domain.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %v", ports.ErrDBConnection, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO samples (metric, unit, ts, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare insert: %v", ports.ErrQueryFailed, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, s := range samples {
		res, err := stmt.ExecContext(ctx, metric, string(unit), s.Timestamp.UTC(), s.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: insert sample: %v", ports.ErrQueryFailed, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ports.ErrQueryFailed, err)
	}
	r.logger.Debug(ctx, "samples saved", map[string]interface{}{
		"metric": metric, "batch": len(samples), "inserted": inserted,
	})
	return inserted, nil
}

// FindByMetric retrieves samples for a metric within [from, to], ordered by
// timestamp ascending.
func (r *Repository) FindByMetric(ctx context.Context, metric string, from, to time.Time) ([]domain.Sample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ts, value FROM samples WHERE metric = ? AND ts >= ? AND ts <= ? ORDER BY ts ASC`,
		metric, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: query samples: %v", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	samples := make([]domain.Sample, 0, 256)
	for rows.Next() {
		var s domain.Sample
		if err := rows.Scan(&s.Timestamp, &s.Value); err != nil {
			return nil, fmt.Errorf("%w: scan sample: %v", ports.ErrQueryFailed, err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate samples: %v", ports.ErrQueryFailed, err)
	}
	return samples, nil
}

// Metrics lists the distinct metric names present in the store.
func (r *Repository) Metrics(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT metric FROM samples ORDER BY metric`)
	if err != nil {
		return nil, fmt.Errorf("%w: query metrics: %v", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan metric: %v", ports.ErrQueryFailed, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
