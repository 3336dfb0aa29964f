package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/blob/memory"
	"github.com/agentstation/fiwdb/internal/transport"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	mock := &appcontext.Mock{
//	    SettingsFunc: func() appcontext.Settings {
//	        return appcontext.Settings{DatabaseDir: dir}
//	    },
//	}
//	cmd := families.NewCommand(mock)
type Mock struct {
	SettingsFunc     func() Settings
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	BlobStoreFunc    func(ctx context.Context) (core.Store, error)
	HTTPClientFunc   func() *transport.Client
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string

	store core.Store
}

// Settings returns settings using the mock function or zero settings.
func (m *Mock) Settings() Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return Settings{}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// BlobStore returns a store using the mock function or one shared
// in-memory store.
func (m *Mock) BlobStore(ctx context.Context) (core.Store, error) {
	if m.BlobStoreFunc != nil {
		return m.BlobStoreFunc(ctx)
	}
	if m.store == nil {
		m.store = memory.New()
	}
	return m.store, nil
}

// HTTPClient returns a client using the mock function or a default client.
func (m *Mock) HTTPClient() *transport.Client {
	if m.HTTPClientFunc != nil {
		return m.HTTPClientFunc()
	}
	return transport.New()
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

var _ Interface = (*Mock)(nil)
