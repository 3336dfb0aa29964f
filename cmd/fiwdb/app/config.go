package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// Config keys, also the suffixes of the FIWDB_* environment variables.
const (
	KeyDatabaseDir        = "database_dir"
	KeyPIDLUT             = "pid_lut"
	KeyRIDLUT             = "rid_lut"
	KeyFIDLUT             = "fid_lut"
	KeyImageDir           = "image_dir"
	KeyBlobDriver         = "blob_driver"
	KeyS3Bucket           = "s3_bucket"
	KeyS3Region           = "s3_region"
	KeyS3Endpoint         = "s3_endpoint"
	KeyS3PathStyle        = "s3_path_style"
	KeyDownloadMaxItems   = "download_max_items"
	KeyDownloadAuthHeader = "download_auth_header"
	KeyDownloadToken      = "download_token"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyLogOutput          = "log_output"
	KeyFormat             = "format"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Global flags
	Verbose          bool
	Quiet            bool
	NoColor          bool
	Format           string
	LogLevelOverride string

	// Config file requested with --config
	ConfigFile string

	appcontext.Settings
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. FIWDB_* environment variables
//  3. .env.local, then .env
//  4. Config file (path, or .fiwdb.yaml in $HOME or the working directory)
//  5. Defaults
//
// An explicitly named config file that cannot be read is an error; a
// missing default config file is not.
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "reading "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + constants.AppName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("file", "reading "+v.ConfigFileUsed(), err)
			}
		}
	}

	maxItems := v.GetInt(KeyDownloadMaxItems)
	if maxItems < 0 {
		return nil, errors.NewConfigError(KeyDownloadMaxItems, "must not be negative", nil)
	}

	return &Config{
		Format:     v.GetString(KeyFormat),
		ConfigFile: v.ConfigFileUsed(),
		Settings: appcontext.Settings{
			DatabaseDir:        v.GetString(KeyDatabaseDir),
			PIDLUT:             v.GetString(KeyPIDLUT),
			RIDLUT:             v.GetString(KeyRIDLUT),
			FIDLUT:             v.GetString(KeyFIDLUT),
			ImageDir:           v.GetString(KeyImageDir),
			BlobDriver:         v.GetString(KeyBlobDriver),
			S3Bucket:           v.GetString(KeyS3Bucket),
			S3Region:           v.GetString(KeyS3Region),
			S3Endpoint:         v.GetString(KeyS3Endpoint),
			S3PathStyle:        v.GetBool(KeyS3PathStyle),
			DownloadMaxItems:   maxItems,
			DownloadAuthHeader: v.GetString(KeyDownloadAuthHeader),
			DownloadToken:      v.GetString(KeyDownloadToken),
			LogLevel:           v.GetString(KeyLogLevel),
			LogFormat:          v.GetString(KeyLogFormat),
			LogOutput:          v.GetString(KeyLogOutput),
			ConfigFile:         v.ConfigFileUsed(),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabaseDir, ".")
	v.SetDefault(KeyBlobDriver, "fs")
	v.SetDefault(KeyDownloadMaxItems, 0)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
}

// UpdateFromFlags applies parsed root flags. Empty strings leave the
// loaded values alone.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, databaseDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevelOverride = logLevel
	}
	if databaseDir != "" {
		c.DatabaseDir = databaseDir
	}
}

// Resolved returns the settings with every unset path derived from the
// database directory.
func (c *Config) Resolved() appcontext.Settings {
	s := c.Settings
	if s.DatabaseDir == "" {
		s.DatabaseDir = "."
	}
	if s.PIDLUT == "" {
		s.PIDLUT = filepath.Join(s.DatabaseDir, constants.DefaultPIDLUT)
	}
	if s.RIDLUT == "" {
		s.RIDLUT = filepath.Join(s.DatabaseDir, constants.DefaultRIDLUT)
	}
	if s.FIDLUT == "" {
		s.FIDLUT = filepath.Join(s.DatabaseDir, constants.DefaultFIDLUT)
	}
	if s.ImageDir == "" {
		s.ImageDir = filepath.Join(s.DatabaseDir, constants.DefaultImageDir)
	}
	return s
}

// loadEnvFiles loads .env.local and then .env; values already in the
// environment are never overwritten, so .env.local wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
