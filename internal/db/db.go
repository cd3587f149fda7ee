package db

import (
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Pool sizing for a small storefront plus a handful of admin sessions.
// Traffic is read-heavy and bursty around page loads, so a modest cap with
// aggressive idle reaping keeps connections off the database between bursts.
const (
	maxOpenConns    = 12
	maxIdleConns    = 4
	connMaxLifetime = time.Hour
	connMaxIdleTime = 5 * time.Minute
)

func Open(dsn string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxLifetime(connMaxLifetime)
	pool.SetConnMaxIdleTime(connMaxIdleTime)
	if err := pool.Ping(); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
