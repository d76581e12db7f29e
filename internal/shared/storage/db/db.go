package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx as the database/sql driver

	"resume-screener/internal/shared/telemetry"
)

// Options sizes the connection pool shared by the résumé and analysis repositories.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var (
	openDB = sql.Open

	errNoDatabaseURL = errors.New("DATABASE_URL is empty")
)

var baseOptions = Options{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: 2 * time.Minute,
	PingTimeout:     5 * time.Second,
}

// DefaultServerOptions is the pool used by the API process.
func DefaultServerOptions() Options { return baseOptions }

// DefaultCLIOptions is the pool used by screenctl and migrate, which run one statement at a time.
func DefaultCLIOptions() Options {
	opts := baseOptions
	opts.MaxOpenConns, opts.MaxIdleConns = 1, 1
	return opts
}

type envOverride struct {
	key   string
	apply func(o *Options, raw string) error
}

var envOverrides = []envOverride{
	{"DB_MAX_OPEN_CONNS", intField(func(o *Options) *int { return &o.MaxOpenConns })},
	{"DB_MAX_IDLE_CONNS", intField(func(o *Options) *int { return &o.MaxIdleConns })},
	{"DB_CONN_MAX_LIFETIME", durationField(func(o *Options) *time.Duration { return &o.ConnMaxLifetime })},
	{"DB_CONN_MAX_IDLE_TIME", durationField(func(o *Options) *time.Duration { return &o.ConnMaxIdleTime })},
	{"DB_PING_TIMEOUT", durationField(func(o *Options) *time.Duration { return &o.PingTimeout })},
}

func intField(field func(*Options) *int) func(*Options, string) error {
	return func(o *Options, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func durationField(field func(*Options) *time.Duration) func(*Options, string) error {
	return func(o *Options, raw string) error {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*field(o) = d
		return nil
	}
}

// OptionsFromEnv layers DB_* variables over defaults. Unparseable values are
// logged and ignored.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	for _, ov := range envOverrides {
		raw := strings.TrimSpace(os.Getenv(ov.key))
		if raw == "" {
			continue
		}
		if err := ov.apply(&opts, raw); err != nil {
			telemetry.Warn("db.env_invalid", map[string]any{"key": ov.key, "value": raw, "error": err})
		}
	}
	return opts
}

// Connect opens the Postgres pool and pings it before handing it out.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errNoDatabaseURL
	}
	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	opts = opts.withFallbacks()
	pool.SetMaxOpenConns(opts.MaxOpenConns)
	pool.SetMaxIdleConns(opts.MaxIdleConns)
	pool.SetConnMaxLifetime(opts.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := pool.Stats()
	telemetry.Info("db.connected", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"max_idle": opts.MaxIdleConns,
		"open":     stats.OpenConnections,
	})
	return pool, nil
}

// withFallbacks replaces non-positive settings with the server defaults.
func (o Options) withFallbacks() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = baseOptions.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = baseOptions.MaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = baseOptions.ConnMaxLifetime
	}
	if o.ConnMaxIdleTime <= 0 {
		o.ConnMaxIdleTime = baseOptions.ConnMaxIdleTime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = baseOptions.PingTimeout
	}
	return o
}
