package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the log level and destination
type Config struct {
	Level string
	File  string
	// Zap truncates File instead of appending to it
	Zap bool
}

// Setup points the global zerolog logger at stderr, or at cfg.File when set.
// The returned cleanup closes the file and moves logging back to stderr.
func Setup(cfg Config) (func() error, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.File == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return func() error { return nil }, nil
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if cfg.Zap {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(cfg.File, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	log.Debug().Str("path", cfg.File).Bool("zap", cfg.Zap).Msg("Logger initialized")

	return func() error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return f.Close()
	}, nil
}

// Discard silences the global logger
func Discard() {
	log.Logger = zerolog.New(io.Discard)
}
