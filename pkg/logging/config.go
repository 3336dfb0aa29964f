package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/fiwdb/pkg/constants"
)

// Config describes a logger.
type Config struct {
	Level      string         // trace, debug, info, warn, error, off
	Format     string         // json, console or auto (console on a terminal)
	Output     string         // stderr, stdout, discard or a file path
	TimeFormat string         // console timestamps: kitchen, rfc3339, stamp or a Go layout
	NoColor    bool           // plain console output
	AddCaller  bool           // add file:line; always on at debug and below
	Fields     map[string]any // attached to every line
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger and sets zerolog's global level to
// match it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out, terminal := openOutput(cfg.Output)
	var w io.Writer = out
	if useConsole(cfg.Format, terminal) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: timeLayout(cfg.TimeFormat), NoColor: cfg.NoColor}
	}

	c := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		c = c.Caller()
	}
	if len(cfg.Fields) > 0 {
		c = c.Fields(cfg.Fields)
	}
	return c.Logger()
}

// Configure installs a logger built from cfg as the default.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// openOutput resolves the output name. A file that cannot be opened falls
// back to stderr.
func openOutput(name string) (io.Writer, bool) {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard, false
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	}
	return f, false
}

func useConsole(format string, terminal bool) bool {
	switch strings.ToLower(format) {
	case "console", "pretty":
		return true
	case "", "auto":
		return terminal
	}
	return false
}

// ParseLevel maps a level name to a zerolog level. Unknown names are info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func timeLayout(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "stamp":
		return time.Stamp
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
