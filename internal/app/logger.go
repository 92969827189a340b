package app

import (
	"log/slog"
	"os"

	"foodline-dispatch/internal/logx"
)

// NewLogger builds the process-wide JSON logger. LOG_LEVEL=debug enables
// debug output; any other value stays at info.
func NewLogger() logx.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	return logx.NewSlogAdapter(base)
}
