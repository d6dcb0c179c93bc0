package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"note-store/config"
	"note-store/config/setup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, logCloser := setup.NewLogger(cfg)
	defer logCloser.Close()
	slog.SetDefault(logger)

	store, err := setup.InitDatabase(cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	application := setup.InitApp(store, logger)

	fiberApp := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(fiberApp, cfg, logger)
	setup.RegisterRoutes(fiberApp, application, cfg)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")
	setup.Shutdown(fiberApp, store, logger)
	logger.Info("server stopped")
}
