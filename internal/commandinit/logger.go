package commandinit

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger writes human readable logs to w. Command output goes to stdout,
// so w is normally stderr.
func NewLogger(w io.Writer, level zerolog.Level, command string) zerolog.Logger {
	consoleWriter := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
	})

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Str("command", command).
		Logger()
}
