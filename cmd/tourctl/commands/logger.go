package commands

import (
	"os"

	"github.com/rs/zerolog"
)

// zerologAdapter adapts zerolog to tourapi.Logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

// newLogger writes human-readable logs to stderr. Verbose enables debug
// output, including the HTTP request trace.
func newLogger(verbose bool) *zerologAdapter {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zerologAdapter{logger: logger}
}

func (l *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
