// Package logger builds the zerolog loggers used by the CLI and the
// inspection server.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configures New.
type Options struct {
	// Out defaults to os.Stderr so that stdout stays free for command output.
	Out     io.Writer
	Format  Format
	Verbose bool
	// Component is added as a "component" field when set, e.g. "serve".
	Component string
}

// New returns a logger at info level, or debug level when Verbose is set.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return ctx.Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
