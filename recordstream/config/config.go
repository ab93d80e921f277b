// Package config loads record store settings from the environment.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AntonStoeckl/recordstream-go/recordstream/memoryengine"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport"
)

// Config holds the environment driven settings of a record store and its Postgres export.
type Config struct {
	MaxWaitTime     time.Duration `env:"RECORDSTREAM_MAX_WAIT_TIME" envDefault:"5s"`
	AutoAcknowledge bool          `env:"RECORDSTREAM_AUTO_ACKNOWLEDGE" envDefault:"true"`
	ExportTable     string        `env:"RECORDSTREAM_EXPORT_TABLE" envDefault:"recordstream_exports"`
	ExportDSN       string        `env:"RECORDSTREAM_EXPORT_DSN"`
	LogLevel        slog.Level    `env:"RECORDSTREAM_LOG_LEVEL" envDefault:"INFO"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// StoreOptions turns the settings into memoryengine options, followed by the given extra options.
func (c Config) StoreOptions(extra ...memoryengine.Option) []memoryengine.Option {
	options := []memoryengine.Option{
		memoryengine.WithMaxWaitTime(c.MaxWaitTime),
		memoryengine.WithAutoAcknowledge(c.AutoAcknowledge),
	}

	return append(options, extra...)
}

// NewLogger creates a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

// NewStore creates a memoryengine.Store with the settings and a logger at the configured level.
func (c Config) NewStore(extra ...memoryengine.Option) (*memoryengine.Store, error) {
	options := append([]memoryengine.Option{memoryengine.WithLogger(c.NewLogger())}, extra...)

	return memoryengine.NewStore(c.StoreOptions(options...)...)
}

// ExportEnabled reports whether a Postgres export DSN is configured.
func (c Config) ExportEnabled() bool {
	return c.ExportDSN != ""
}

// OpenExporter connects the Postgres exporter configured by ExportDSN and ExportTable and ensures its table.
// The caller owns the returned close function.
func (c Config) OpenExporter(ctx context.Context) (recordexport.PostgresExporter, func() error, error) {
	exporter, db, err := recordexport.OpenPostgresExporter(
		c.ExportDSN,
		recordexport.WithTableName(c.ExportTable),
		recordexport.WithLogger(c.NewLogger()),
	)
	if err != nil {
		return recordexport.PostgresExporter{}, nil, err
	}

	if err = exporter.EnsureTable(ctx); err != nil {
		_ = db.Close()
		return recordexport.PostgresExporter{}, nil, err
	}

	return exporter, db.Close, nil
}
