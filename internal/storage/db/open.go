// Package db contains the SQL statements, models, and migrations used by the
// storage package. Both SQLite and Postgres are supported.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres sql.DB driver initialization
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite" // sqlite sql.DB driver initialization
)

// Dialect selects the SQL backend.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	return d == DialectSQLite || d == DialectPostgres
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) gooseDialect() goose.Dialect {
	if d == DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

var (
	hookOnce sync.Once
	// goose configuration is package-global
	migrateMu sync.Mutex
)

// Open initializes a connection for the dialect and migrates the database to
// match the current state expected of the system. For SQLite, the parent
// directory of dsn is created if the database file does not exist.
func Open(ctx context.Context, logger *slog.Logger, dialect Dialect, dsn string) (*sql.DB, error) {
	if !dialect.Valid() {
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	if dialect == DialectSQLite {
		if err := prepareSQLite(dsn); err != nil {
			return nil, err
		}
	}

	handle, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB handler: %w", err)
	} else if err = handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	if dialect == DialectSQLite {
		handle.SetMaxOpenConns(1)
	}

	logger = logger.With(slog.String("db", string(dialect)))
	if err = Migrate(ctx, logger, dialect, handle); err != nil {
		_ = handle.Close()
		return nil, err
	}
	return handle, nil
}

// Migrate applies all pending migrations for dialect to handle.
func Migrate(ctx context.Context, logger *slog.Logger, dialect Dialect, handle *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(string(dialect.gooseDialect())); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, handle, "migrations/"+string(dialect)); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func prepareSQLite(dsn string) error {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
			const initSQL = `
			pragma journal_mode = WAL; -- allow concurrent readers
			pragma synchronous = normal; -- don't wait for fsync except on checkpointing
			pragma foreign_keys = on; -- enforce course owner references
			pragma busy_timeout = 5000;
			`
			_, err := conn.ExecContext(context.Background(), initSQL, nil)
			return err
		})
	})

	if dsn == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dsn); err != nil {
		const userOnlyDirPerms = 0o700
		if err = os.MkdirAll(filepath.Dir(dsn), userOnlyDirPerms); err != nil {
			return fmt.Errorf("failed to create db parent directory: %w", err)
		}
	}
	return nil
}
