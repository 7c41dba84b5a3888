package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spacesedan/aspectflow/config"
	"github.com/spacesedan/aspectflow/internal/logging"
	"github.com/spacesedan/aspectflow/internal/pipeline"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logging.InitLogger("info")
		slog.Error("[Main] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	scorer, closeScorer, err := pipeline.BuildScorer(ctx, cfg)
	if err != nil {
		closeScorer()
		slog.Error("[Main] Failed to initialize sentiment scorer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	_, err = pipeline.Run(ctx, cfg, scorer, os.Stdout)
	closeScorer()
	if err != nil {
		slog.Error("[Main] Run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
