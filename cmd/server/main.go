package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/app"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Wait for interrupt signal for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg).Serve(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
