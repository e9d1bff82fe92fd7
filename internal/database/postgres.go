package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func NewPool(ctx context.Context, databaseURL string, log zerolog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	// Retry connection (Postgres may not be ready yet in Docker)
	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 10; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database connect failed")
			time.Sleep(2 * time.Second)
			continue
		}
		if pingErr := pool.Ping(ctx); pingErr != nil {
			pool.Close()
			log.Warn().Err(pingErr).Int("attempt", attempt).Msg("database ping failed")
			time.Sleep(2 * time.Second)
			continue
		}
		log.Info().Int("attempt", attempt).Msg("database connected")
		return pool, nil
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
