/*
Package logging configures the process logger.

PURPOSE:
  One constructor for the zerolog logger used across the server. The
  calculation packages stay log-free; only the API and command layers
  carry a logger.

FORMATS:
  "console": human-readable, colorized, for development
  "json":    structured JSON lines, for production
*/
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns the process logger in the requested format. Unknown
// formats fall back to JSON.
func Setup(format string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
