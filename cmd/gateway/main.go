package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/gateway"
)

func main() {
	cfgPath := flag.String("config", "", "path to the JSON configuration file")
	addr := flag.String("addr", "", "listen address (overrides listen_addr)")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	overrides := config.Overrides{}
	flag.Var(overrides, "set", "override a config field, key=value (repeatable)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	level := slog.LevelInfo
	if *debugFlag || cfg.Debug {
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
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if level != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	timeout := time.Duration(cfg.BackendTimeoutSeconds) * time.Second
	backend, err := gateway.NewBackendClient(cfg.BackendURL, cfg.BackendPath, &http.Client{Timeout: timeout + time.Second})
	if err != nil {
		logger.Error("create backend client", "error", err)
		os.Exit(1)
	}
	router := gateway.NewRouter(gateway.NewHandler(backend, timeout, logger), logger)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("gateway listening", "addr", cfg.ListenAddr, "backend", backend.URL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("run server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
