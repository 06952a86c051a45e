// Package logging sets up the zerolog logger shared by the CLI and
// HTTP adapters.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a logger at the given level ("debug", "info", "warn",
// "error"; anything else falls back to "info"). Output goes to a
// colorized console writer when stderr is a terminal, and to plain
// JSON lines otherwise, so piping bpmn2dcr's output stays
// machine-readable.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
