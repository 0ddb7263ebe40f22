// Package main provides the workforce-pulse API server.
// Configuration comes from PULSE_* environment variables.
package main

import (
	"os"

	"github.com/caarlos0/env/v11"

	"workforce-pulse/api"
	"workforce-pulse/datasource"
	"workforce-pulse/pkg/platform"
)

func main() {
	cfg := &api.Config{}
	if err := env.Parse(cfg); err != nil {
		logger := platform.NewLogger("error", os.Getenv("ENV") == "development")
		platform.Fatal(logger, "parse config", err)
	}

	logger := platform.NewLogger(cfg.LogLevel, os.Getenv("ENV") == "development")

	logger.Info().
		Int("port", cfg.Port).
		Int64("seed", cfg.DataSeed).
		Msg("starting workforce-pulse API server")

	server := api.NewServer(datasource.Generate(cfg.DataSeed), cfg, logger)
	if err := server.StartWithGracefulShutdown(); err != nil {
		platform.Fatal(logger, "server failed", err)
	}
}
