package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the global slog logger based on environment and returns it.
func Setup(env string) *slog.Logger {
	return setup(os.Stdout, env)
}

func setup(w io.Writer, env string) *slog.Logger {
	level := levelFor(env)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		// Production: JSON format for log shipping
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Logger 초기화", "env", env, "level", level.String())
	return logger
}

// levelFor maps an environment name to its minimum log level.
func levelFor(env string) slog.Level {
	switch env {
	case "local", "dev", "development":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
