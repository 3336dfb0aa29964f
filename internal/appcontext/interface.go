// Package appcontext provides the application context interface shared by
// every command, so commands depend on an interface rather than on the
// concrete App and can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/transport"
)

// Settings are the resolved dataset locations and tool settings, after
// flags, environment, .env files and the config file have been applied.
type Settings struct {
	DatabaseDir string `json:"database_dir" yaml:"database_dir"`
	PIDLUT      string `json:"pid_lut" yaml:"pid_lut"`
	RIDLUT      string `json:"rid_lut" yaml:"rid_lut"`
	FIDLUT      string `json:"fid_lut" yaml:"fid_lut"`
	ImageDir    string `json:"image_dir" yaml:"image_dir"`

	BlobDriver  string `json:"blob_driver" yaml:"blob_driver"`
	S3Bucket    string `json:"s3_bucket,omitempty" yaml:"s3_bucket,omitempty"`
	S3Region    string `json:"s3_region,omitempty" yaml:"s3_region,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" yaml:"s3_endpoint,omitempty"`
	S3PathStyle bool   `json:"s3_path_style" yaml:"s3_path_style"`

	DownloadMaxItems   int    `json:"download_max_items" yaml:"download_max_items"`
	DownloadAuthHeader string `json:"download_auth_header,omitempty" yaml:"download_auth_header,omitempty"`
	DownloadToken      string `json:"-" yaml:"-"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
	LogOutput string `json:"log_output" yaml:"log_output"`

	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}

// Interface is what commands need from the application.
type Interface interface {
	// Settings returns the effective configuration.
	Settings() Settings

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml).
	OutputFormat() string

	// BlobStore opens the configured image store.
	BlobStore(ctx context.Context) (core.Store, error)

	// HTTPClient returns the client used to fetch images.
	HTTPClient() *transport.Client

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
