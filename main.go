package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/digit-sketch-go/app"
	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/debug"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON configuration file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime loggers")
	overrides := config.Overrides{}
	flag.Var(overrides, "set", "override a config field, key=value (repeatable)")
	flag.Parse()

	// Set up logger
	level := slog.LevelInfo
	cfg, err := config.Load(*cfgPath)
	if *debugFlag || cfg.Debug {
		cfg.Debug = true
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if err := overrides.Apply(cfg); err != nil {
		logger.Error("invalid config override", "error", err)
		os.Exit(2)
	}

	application, err := app.NewApp("Digit Sketch", cfg, *cfgPath, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if cfg.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
	}
	application.Start()
}
