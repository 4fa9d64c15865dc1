package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-notegen/pkg/interfaces"
)

// ErrEmptyDSN is returned when no manifest DSN is configured.
var ErrEmptyDSN = errors.New("manifest: dsn is required")

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ParseDSN picks the database driver for dsn. postgres:// and postgresql://
// select Postgres; sqlite:// and sqlite3:// are stripped to a SQLite path;
// anything else is handed to SQLite unchanged.
func ParseDSN(dsn string) (driver, source string, err error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", "", ErrEmptyDSN
	}

	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(lower, "sqlite3://"):
		return DriverSQLite, dsn[len("sqlite3://"):], nil
	case strings.HasPrefix(lower, "sqlite://"):
		return DriverSQLite, dsn[len("sqlite://"):], nil
	default:
		return DriverSQLite, dsn, nil
	}
}

// Open connects to the database named by dsn and wraps it in Bun.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	driver, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("manifest open %s: %w", driver, err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("manifest ping %s: %w", driver, err)
	}

	var dialect schema.Dialect = sqlitedialect.New()
	if driver == DriverPostgres {
		dialect = pgdialect.New()
	}
	return bun.NewDB(sqldb, dialect), nil
}

// OpenRepository opens dsn and returns a repository with its schema in place.
// The returned close function releases the database.
func OpenRepository(ctx context.Context, dsn string, opts ...RepositoryOption) (*BunRepository, func() error, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	cfg := repositoryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	repo := NewBunRepository(db, cfg.logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("manifest schema: %w", err)
	}
	return repo, db.Close, nil
}

// RepositoryOption customizes OpenRepository.
type RepositoryOption func(*repositoryConfig)

type repositoryConfig struct {
	logger interfaces.Logger
}

// WithLogger attaches a logger to the opened repository.
func WithLogger(logger interfaces.Logger) RepositoryOption {
	return func(cfg *repositoryConfig) {
		cfg.logger = logger
	}
}
