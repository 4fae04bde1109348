package logger

import (
	"github.com/rs/zerolog"
)

// WithLevel returns a copy of base at the given level. Unknown level
// strings fall back to info rather than failing startup.
func WithLevel(base zerolog.Logger, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return base.Level(lvl)
}
