package logger

import (
	"os"
	"time"

	"Parcelo/config"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func Init(cfg *config.Config) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil && cfg.App.LogLevel != "" {
		level = parsed
	}

	var out = zerolog.New(os.Stdout)
	if cfg.App.Environment != "production" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	log = out.Level(level).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
