// Package logging provides structured logging for fiwdb using zerolog.
//
// Nothing is configured at import time: until the entry point calls
// Configure (or SetDefault), the default logger discards everything.
// Library code takes its logger from the context:
//
//	ctx = logging.WithLogger(ctx, &logger)
//	ctx = logging.WithFamily(ctx, "F0001")
//	logging.FromContext(ctx).Info().Int("pairs", n).Msg("Derived pairs")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = zerolog.Nop()

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}
