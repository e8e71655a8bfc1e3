// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup builds a logger writing to w at the named level. format "json"
// writes JSON lines; anything else uses the human console writer. An
// unknown level falls back to warn. The result also becomes log.Logger.
func Setup(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	output := w
	if format != "json" {
		output = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
