// Package app provides the application context and dependency management
// for the fiwdb CLI: configuration, logging, the image store and the HTTP
// client live here and are handed to commands through appcontext.Interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/blob"
	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/blob/s3"
	"github.com/agentstation/fiwdb/internal/transport"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// App represents the fiwdb application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created, shared by every command of one run.
	mu     sync.Mutex
	store  core.Store
	client *transport.Client
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App with configuration loaded from the default
// locations. Options run last and may replace any dependency.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Settings returns the effective settings with derived paths filled in.
func (a *App) Settings() appcontext.Settings { return a.config.Resolved() }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format, empty for auto.
func (a *App) OutputFormat() string { return a.config.Format }

// BlobStore opens the configured image store once per run.
func (a *App) BlobStore(ctx context.Context) (core.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}

	s := a.Settings()
	driver, err := core.ParseDriver(s.BlobDriver)
	if err != nil {
		return nil, err
	}
	store, err := blob.Open(ctx, blob.Config{
		Driver: driver,
		Root:   s.ImageDir,
		S3: s3.Config{
			Bucket:    s.S3Bucket,
			Region:    s.S3Region,
			Endpoint:  s.S3Endpoint,
			PathStyle: s.S3PathStyle,
		},
	})
	if err != nil {
		return nil, errors.WrapResource("open", "blob store", string(driver), err)
	}
	a.logger.Debug().Str("driver", string(driver)).Msg("Opened image store")
	a.store = store
	return store, nil
}

// HTTPClient returns the image download client.
func (a *App) HTTPClient() *transport.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		s := a.config.Settings
		a.client = transport.New(transport.WithAuth(transport.AuthFor(s.DownloadAuthHeader), s.DownloadToken))
	}
	return a.client
}

// configure rebuilds the logger after flags are parsed and installs it as
// the package default.
func (a *App) configure() {
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithBlobStore sets the image store (useful for testing).
func WithBlobStore(store core.Store) Option {
	return func(a *App) error {
		a.store = store
		return nil
	}
}
