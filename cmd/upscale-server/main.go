package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ytget/upscaler/internal/config"
	"github.com/ytget/upscaler/internal/logging"
	"github.com/ytget/upscaler/internal/server"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Debug)
	log.WithField("version", version).Info("Upscale server starting")

	srv, err := server.New(server.Options{
		UploadDir:      cfg.UploadDir,
		ProcessedDir:   cfg.ProcessedDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := server.NewJanitor([]string{cfg.UploadDir, cfg.ProcessedDir}, cfg.Retention, cfg.CleanupInterval, log)
	go janitor.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("Server stopped")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}
}
