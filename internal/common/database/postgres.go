package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"admissions-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// Postgres holds the pool behind the postgres key-value store.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres opens a lazily connecting pool sized from config.
func NewPostgres(cfg config.PostgresConfig) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return WrapPostgres(db, cfg), nil
}

// WrapPostgres applies the pool limits from cfg to an open *sql.DB.
func WrapPostgres(db *sql.DB, cfg config.PostgresConfig) *Postgres {
	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Postgres{DB: db}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}
