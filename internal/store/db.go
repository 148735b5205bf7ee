package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Backend names accepted by NewDB.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// DB wraps sqlx.DB for Postgres (pgx) or SQLite.
type DB struct {
	Client  *sqlx.DB
	Backend string
}

// NewDB opens and pings a database for the given backend.
func NewDB(ctx context.Context, backend, dsn string) (*DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch backend {
	case Postgres:
		db, err = sqlx.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	case SQLite:
		db, err = sqlx.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers anyway
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unknown database backend %q", backend)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", backend, err)
	}
	return &DB{Client: db, Backend: backend}, nil
}

// Healthy reports whether the database answers a ping.
func (d *DB) Healthy(ctx context.Context) bool {
	if d == nil || d.Client == nil {
		return false
	}
	return d.Client.PingContext(ctx) == nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
