package database

import (
	"context"
	"fmt"
	"time"

	"crimson-pos/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Service owns the connection pool shared by all repositories.
type Service interface {
	DB() *sqlx.DB
	Health(ctx context.Context) map[string]string
	Close() error
}

type service struct {
	db *sqlx.DB
}

// New opens the pool and verifies the database is reachable.
func New(cfg config.DatabaseConfig) (Service, error) {
	db, err := sqlx.Open(DriverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &service{db: db}, nil
}

// Wrap adapts an already opened pool, mainly for tests.
func Wrap(db *sqlx.DB) Service {
	return &service{db: db}
}

func (s *service) DB() *sqlx.DB {
	return s.db
}

// Health pings the database and reports pool statistics
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
