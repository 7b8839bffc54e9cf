// Package postgres implements a ContentStore on a single Postgres table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements ports.ContentStore on a key/value table with an
// expires_at column.
type Store struct {
	db        Querier
	getSQL    string
	putSQL    string
	schemaSQL string
}

// NewStore creates a Store on table. The table name must be a plain identifier.
func NewStore(db Querier, table string) (*Store, error) {
	if !validTableName.MatchString(table) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, fmt.Sprintf("table %q", table)), "table", table)
	}
	ident := pgx.Identifier{table}.Sanitize()

	return &Store{
		db: db,
		getSQL: fmt.Sprintf(
			`SELECT value FROM %s WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`, ident),
		putSQL: fmt.Sprintf(
			`INSERT INTO %s (key, value, expires_at, updated_at) VALUES ($1, $2, $3, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()`, ident),
		schemaSQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    expires_at TIMESTAMPTZ,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, ident),
	}, nil
}

// Connect opens a pool for dsn and pings it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreConnectFailed.Error()), "driver", domain.StoreDriverPostgres)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreConnectFailed.Error())
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, zerr.Wrap(err, domain.ErrStoreConnectFailed.Error())
	}
	return pool, nil
}

// EnsureSchema creates the table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, s.schemaSQL); err != nil {
		return zerr.Wrap(err, domain.ErrStoreConnectFailed.Error())
	}
	return nil
}

// Get retrieves the value stored under key, ignoring expired rows.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, s.getSQL, key, time.Now().UTC()).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}
	return value, true, nil
}

// Put upserts value under key.
func (s *Store) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().UTC().Add(ttl)
		expiresAt = &t
	}

	if _, err := s.db.Exec(ctx, s.putSQL, key, value, expiresAt); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}
