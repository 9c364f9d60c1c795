// Package logging builds the zerolog logger shared by the CLI and services.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a timestamped logger writing to w at level. Format "auto"
// picks console output when isTTY is true and JSON otherwise.
func New(w io.Writer, level, format string, isTTY bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch strings.ToLower(format) {
	case FormatAuto, "":
		if isTTY {
			w = consoleWriter(w, false)
		}
	case FormatConsole:
		w = consoleWriter(w, !isTTY)
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (expected auto, console, or json)", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor}
}
