package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakhimovb/staylist/internal/common/logger"
)

const (
	maxConnectAttempts  = 10
	initialConnectDelay = 500 * time.Millisecond
	maxConnectDelay     = 8 * time.Second
)

func NewPool(log *logger.Logger, databaseURL string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Fatalf("failed to parse database url: %v", err)
	}

	cfg.MaxConns = 20
	cfg.MinConns = 4
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second
	cfg.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "staylist",
	}

	delay := initialConnectDelay
	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.ConnectConfig(context.Background(), cfg)
		if err == nil {
			log.Infof("database connection pool initialized: max=%d, min=%d", cfg.MaxConns, cfg.MinConns)
			return pool
		}

		if attempt == maxConnectAttempts {
			log.Fatalf("failed to connect to database after %d attempts: %v", attempt, err)
			return nil
		}

		log.Warnf("failed to connect to database (attempt %d/%d), retrying in %s: %v",
			attempt, maxConnectAttempts, delay, err)
		time.Sleep(delay)
		if delay < maxConnectDelay {
			delay *= 2
		}
	}
}
