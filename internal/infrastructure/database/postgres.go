package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Config holds PostgreSQL connection and pool settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxConns int32
	MinConns int32

	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// Postgres wraps a pgx connection pool with connect/health-check helpers.
type Postgres struct {
	Pool   *pgxpool.Pool
	config *Config
}

func NewPostgres(config *Config) *Postgres {
	return &Postgres{config: config}
}

func (p *Postgres) dsn() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.config.User,
		p.config.Password,
		p.config.Host,
		p.config.Port,
		p.config.Database,
		p.config.SSLMode,
	)
}

// Connect establishes the pool, retrying with exponential backoff.
func (p *Postgres) Connect(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(p.dsn())
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = p.config.MaxConns
	poolConfig.MinConns = p.config.MinConns
	poolConfig.ConnConfig.ConnectTimeout = p.config.ConnectTimeout

	var lastErr error
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, p.config.ConnectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		cancel()

		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr != nil {
				pool.Close()
				err = pingErr
			} else {
				log.Info().Int("attempt", attempt).Msg("connected to postgres")
				p.Pool = pool
				return nil
			}
		}

		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("postgres connection failed")

		if attempt < p.config.MaxRetries {
			delay := p.config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", p.config.MaxRetries, lastErr)
}

// HealthCheck pings the database with a short timeout.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	if p.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
