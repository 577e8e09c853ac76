// Package main is the entry point for Deckbound.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/deckbound/internal/game"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/telemetry"
	"github.com/samdwyer/deckbound/internal/ui"
)

var configPath = flag.String("config", "deckbound.yaml", "path to configuration file")

func main() {
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_DECKBOUND_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The terminal belongs to the game, so logs go to a file.
	logger, err := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Development, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	regs, err := gamedata.LoadRegistries()
	if err != nil {
		logger.Fatal("failed to load game data", zap.Error(err))
	}

	screen, err := ui.NewScreen()
	if err != nil {
		logger.Fatal("failed to initialize screen", zap.Error(err))
	}

	g, err := game.New(screen, regs, cfg, logger)
	if err != nil {
		screen.Close()
		logger.Fatal("failed to initialize game", zap.Error(err))
	}

	if err := g.Run(ctx); err != nil {
		logger.Error("game error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_DECKBOUND_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DECKBOUND_DATASET")
	if dataset == "" {
		dataset = "deckbound" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
