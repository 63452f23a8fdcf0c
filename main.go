package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/app"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger, err := logging.NewZapLogger(logging.DefaultLogConfig())
	if err != nil {
		panic(err)
	}
	logging.SetGlobalLogger(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		logger.Error("application initialization failed", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("server failed", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", err)
	}

	if zl, ok := logger.(*logging.ZapAdapter); ok {
		_ = zl.Sync()
	}
}
