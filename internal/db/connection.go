package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Config holds database configuration
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ConnectTimeout time.Duration
}

// DSN builds the connection string for the configuration.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Connect opens a single connection to the registration database and
// verifies it with a ping. The dial is bounded by the configured connect
// timeout so a hung server cannot stall the run indefinitely. Callers own
// the connection and must close it on all exit paths.
func Connect(ctx context.Context, config Config) (*pgx.Conn, error) {
	timeout := config.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := pgx.Connect(dialCtx, config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(dialCtx); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// DefaultConfig returns a default database configuration
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           5432,
		User:           "postgres",
		Password:       "",
		DBName:         "rco_registration",
		SSLMode:        "disable",
		ConnectTimeout: 30 * time.Second,
	}
}
