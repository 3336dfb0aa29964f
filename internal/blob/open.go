// Package blob selects and opens the configured image store.
package blob

import (
	"context"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/blob/fs"
	"github.com/agentstation/fiwdb/internal/blob/memory"
	"github.com/agentstation/fiwdb/internal/blob/s3"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// Config chooses a driver and carries its settings.
type Config struct {
	Driver core.Driver
	Root   string // fs driver
	S3     s3.Config
}

// Open returns the Store for cfg.Driver (fs when empty).
func Open(ctx context.Context, cfg Config) (core.Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = core.DriverFilesystem
	}
	switch driver {
	case core.DriverFilesystem:
		st, err := fs.New(cfg.Root)
		if err != nil {
			return nil, err
		}
		return st, nil
	case core.DriverS3:
		st, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return st, nil
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, errors.NewValidationError("blob_driver", string(driver), "unknown blob driver")
	}
}
