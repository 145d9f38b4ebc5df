package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/analyzer"
	"github.com/spacesedan/review-analyzer/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = analyzer.Run(ctx, analyzer.Options{
		InputPath:  cfg.InputPath,
		CrossCheck: cfg.VaderCrossCheck,
	}, analyzer.SinkFromConfig(cfg))

	switch {
	case err == nil:
		return
	case errors.Is(err, analyzer.ErrInputMissing):
		slog.Error("[Main] Input file not found", slog.String("path", cfg.InputPath))
	default:
		slog.Error("[Main] Error during analysis", slog.String("error", err.Error()))
	}
	stop()
	os.Exit(1)
}
