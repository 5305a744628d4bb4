package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by the pool and an open
// transaction. Repositories always go through this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Pool is what DB needs from the underlying connection pool. pgxpool.Pool
// satisfies it, and so does a pgxmock pool in tests.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type DB struct {
	Pool Pool

	pgxPool *pgxpool.Pool
}

func NewPostgreSQLDB(dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool, pgxPool: pool}, nil
}

// NewWithPool wraps an existing pool. Used by tests to plug in a mock pool.
func NewWithPool(pool Pool) *DB {
	return &DB{Pool: pool}
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

// AcquireConn checks out a dedicated connection. Needed for session-scoped
// state such as advisory locks, which must be released on the same
// connection they were taken on.
func (db *DB) AcquireConn(ctx context.Context) (*pgxpool.Conn, error) {
	if db.pgxPool == nil {
		return nil, errors.New("dedicated connections require a pgx pool")
	}
	return db.pgxPool.Acquire(ctx)
}

func (db *DB) Close() {
	if db.pgxPool != nil {
		db.pgxPool.Close()
	}
}
