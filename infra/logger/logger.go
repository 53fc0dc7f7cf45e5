package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	corelogger "github.com/adbreak/breakgen/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

var (
	console bool
	output  io.Writer = os.Stderr
)

// Configure sets the global level and output format used by New. Unknown
// levels fall back to info.
func Configure(level string, useConsole bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	console = useConsole
}

// New returns a Logger for the given component. Console output is used when
// configured or when APP_ENV is dev.
func New(component string) Logger {
	useConsole := console || strings.ToLower(os.Getenv("APP_ENV")) == "dev"
	return NewZerologLogger(component, output, useConsole)
}
