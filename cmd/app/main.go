package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"leadengine/internal/pkg/config"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/pipeline"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	pl := pipeline.New(cfg)

	// Create a cancellable context so we can gracefully shut down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background consumer for queued enrichment jobs.
	pl.ProcessJobs(ctx)

	// The HTTP service blocks, so it runs in its own goroutine.
	go pl.StartService(cfg.ServerPort)

	// Listen for OS signals to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	s := <-sigChan
	logger.Log.Info("Received signal, shutting down", zap.String("signal", s.String()))
	cancel()

	pl.Stop()

	// Give some time for cleanup if needed
	time.Sleep(2 * time.Second)
	logger.Log.Info("Shutdown complete")
}
