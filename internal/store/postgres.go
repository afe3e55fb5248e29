package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the minimal interface shared by *pgxpool.Pool and pgx.Tx, so the
// same store code works inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Compile-time assertion that Postgres implements KV.
var _ KV = (*Postgres)(nil)

// Postgres is the server-deployment persistence backend. Records live in a
// single advisory_kv table; last write wins, no locking, matching the
// single-writer model of the advisory core.
type Postgres struct {
	db DBTX
}

// NewPostgres creates a Postgres store over the given connection (pool or
// transaction). The schema must already contain the advisory_kv table:
//
//	CREATE TABLE IF NOT EXISTS advisory_kv (
//	    key   TEXT PRIMARY KEY,
//	    value BYTEA NOT NULL
//	)
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres connects a pgx pool to url and ensures the advisory_kv table
// exists.
func OpenPostgres(ctx context.Context, url string) (*Postgres, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS advisory_kv (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`,
	); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating advisory_kv table: %w", err)
	}
	return NewPostgres(pool), pool, nil
}

// Get returns the value for key, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx, `SELECT value FROM advisory_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %q: %w", key, err)
	}
	return value, nil
}

// Set writes value under key, replacing any previous value.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO advisory_kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("postgres set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM advisory_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres delete %q: %w", key, err)
	}
	return nil
}
