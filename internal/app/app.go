// Package app wires the portal core for the shell.
//
// It picks the session backend from config, builds the directory, the
// reference data and the gate service, and owns everything that needs
// closing.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"portal/internal/audit"
	"portal/internal/auth/directory"
	"portal/internal/auth/service"
	"portal/internal/auth/store/session"
	"portal/internal/platform/config"
	"portal/internal/platform/logger"
	"portal/internal/platform/metrics"
	platformredis "portal/internal/platform/redis"
	"portal/internal/reference"
	"portal/internal/storage"
	"portal/internal/storage/file"
	storageredis "portal/internal/storage/redis"
	"portal/internal/storage/sqlite"
)

// App is the wired dependency graph.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Audit      *audit.Publisher
	Sessions   *session.Store
	Auth       *service.Service
	References *reference.Service

	closers []io.Closer
}

type Option func(*options)

type options struct {
	logger     *slog.Logger
	secretCost int
}

// WithLogger replaces the logger built from config.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSecretCost sets the bcrypt cost used to hash the demo accounts.
func WithSecretCost(cost int) Option {
	return func(o *options) {
		o.secretCost = cost
	}
}

// New builds the App from cfg.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{secretCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.LogLevel, cfg.LogFormat)
	}

	a := &App{
		Config:   cfg,
		Logger:   o.logger,
		Registry: prometheus.NewRegistry(),
	}
	a.Metrics = metrics.New(a.Registry)
	a.Audit = audit.NewPublisher(audit.NewLogStore(a.Logger))

	backend, err := a.sessionBackend(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Sessions = session.New(backend,
		session.WithKey(cfg.SessionKey),
		session.WithLogger(a.Logger),
		session.WithMetrics(a.Metrics),
	)

	a.References = reference.NewService(reference.NewStores(),
		reference.WithLogger(a.Logger),
		reference.WithAuditPublisher(a.Audit),
	)
	if err := reference.Seed(ctx, a.References); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("seed reference data: %w", err)
	}

	entries, err := loadEntries(cfg, o.secretCost)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	dir, err := directory.New(entries,
		directory.WithLatency(cfg.AuthLatency),
		directory.WithLogger(a.Logger),
	)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build directory: %w", err)
	}

	a.Auth, err = service.New(dir, a.Sessions,
		service.WithLogger(a.Logger),
		service.WithMetrics(a.Metrics),
		service.WithAuditPublisher(a.Audit),
		service.WithReferences(a.References),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func loadEntries(cfg config.Config, cost int) ([]directory.Entry, error) {
	if cfg.DirectoryFile != "" {
		return directory.LoadFile(cfg.DirectoryFile)
	}
	return directory.DefaultEntries(cost)
}

func (a *App) sessionBackend(ctx context.Context) (storage.Store, error) {
	switch a.Config.SessionBackend {
	case config.BackendMemory:
		return storage.NewInMemory(), nil
	case config.BackendFile:
		return file.New(a.Config.Home)
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(a.Config.SQLitePath), 0o700); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		db, err := sqlite.Open(a.Config.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		return db, nil
	case config.BackendRedis:
		client, err := platformredis.New(ctx, a.Config.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		return storageredis.New(client.Client,
			storageredis.WithTTL(a.Config.Redis.SessionTTL),
			storageredis.WithKeyPrefix(a.Config.Redis.KeyPrefix),
		), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", a.Config.SessionBackend)
	}
}

// WriteMetrics dumps the registry to the configured textfile, if any.
func (a *App) WriteMetrics() error {
	if a.Config.MetricsTextfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.Config.MetricsTextfile, a.Registry)
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
