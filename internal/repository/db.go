package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string // postgres://... or a SQLite file path (":memory:" for tests)
	MaxConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// DB is an opened journal database.
type DB struct {
	Driver  *entsql.Driver
	Dialect string
	pool    *pgxpool.Pool
}

// IsPostgres reports whether dsn points at a Postgres server.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the journal database, wraps it for Ent's SQL layer and
// creates the journal tables when missing.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		db  *DB
		err error
	)
	if IsPostgres(cfg.DSN) {
		db, err = openPostgres(ctx, cfg, logger)
	} else {
		db, err = openSQLite(cfg, logger)
	}
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close(logger)
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return db, nil
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to journal database", "dialect", dialect.Postgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse journal dsn", "error", err)
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "docsort"

	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to journal database", "error", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("journal database ping failed", "error", err)
		return nil, err
	}

	// Wrap pool as *sql.DB for Ent
	sqlDB := stdlib.OpenDBFromPool(pool)
	return &DB{Driver: entsql.OpenDB(dialect.Postgres, sqlDB), Dialect: dialect.Postgres, pool: pool}, nil
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("opening journal database", "dialect", dialect.SQLite, "path", cfg.DSN)
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open journal database", "error", err)
		return nil, err
	}
	// one writer; also keeps ":memory:" on a single connection
	sqlDB.SetMaxOpenConns(1)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &DB{Driver: entsql.OpenDB(dialect.SQLite, sqlDB), Dialect: dialect.SQLite}, nil
}

// HealthCheck pings the journal database within timeout.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if db.pool != nil {
		return db.pool.Ping(ctx)
	}
	return db.Driver.DB().PingContext(ctx)
}

// Close closes the database connections gracefully
func (db *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if db.Driver != nil {
		if err := db.Driver.Close(); err != nil {
			logger.Error("failed to close journal driver", "error", err)
		}
	}
	if db.pool != nil {
		db.pool.Close()
	}
	logger.Debug("journal database closed")
}

func migrate(ctx context.Context, db *DB) error {
	idType, tsType := "TEXT", "TIMESTAMP"
	if db.Dialect == dialect.Postgres {
		idType, tsType = "UUID", "TIMESTAMPTZ"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id ` + idType + ` PRIMARY KEY,
			root TEXT NOT NULL,
			dry_run BOOLEAN NOT NULL DEFAULT FALSE,
			started_at ` + tsType + ` NOT NULL,
			finished_at ` + tsType + `,
			dirs INTEGER NOT NULL DEFAULT 0,
			entries INTEGER NOT NULL DEFAULT 0,
			ok_entries INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			quarantined INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			id ` + idType + ` PRIMARY KEY,
			run_id ` + idType + ` NOT NULL REFERENCES runs(id),
			dir TEXT NOT NULL,
			source_name TEXT NOT NULL,
			target_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			doctype TEXT NOT NULL DEFAULT '',
			issuer TEXT NOT NULL DEFAULT '',
			mark TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			recorded_at ` + tsType + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS outcomes_run_id ON outcomes (run_id)`,
	}
	for _, s := range stmts {
		if err := db.Driver.Exec(ctx, s, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}
