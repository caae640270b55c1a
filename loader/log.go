package loader

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a colorized console logger for status output.
func NewLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func toolLogger(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("tool", name).Logger()
}
