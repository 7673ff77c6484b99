package client

import (
	"context"
	"time"

	"slotlink/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func (c *Client) SetPostgres(log *logger.Logger, databaseURL string, connTimeout time.Duration) {
	pool, err := ConnectPostgres(databaseURL, connTimeout)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", "error", err)
	}
	log.Info("Successfully connected to Postgres")
	c.Postgres = pool
}

func ConnectPostgres(databaseURL string, connTimeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
