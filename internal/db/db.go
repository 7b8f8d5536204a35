package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const pingTimeout = 5 * time.Second

// Database holds the SQL connection pool backing the music catalog.
type Database struct {
	*sql.DB
}

// New creates, configures, and verifies a MariaDB connection pool.
// It returns an error if opening or pinging the database fails.
func New(ctx context.Context, cfg MariaDbConfig) (*Database, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		// close the connection pool before returning the ping error
		if cErr := db.Close(); cErr != nil {
			return nil, cErr
		}
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{db}, nil
}
