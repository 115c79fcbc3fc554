package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"traefik-monitor/internal/app"
	"traefik-monitor/internal/shared/configs"
)

const defaultConfigPath = "./configs/monitor.yml"

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Load configuration
	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize application
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize monitor: %v\n", err)
		os.Exit(1)
	}

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Monitor failed: %v\n", err)
		os.Exit(1)
	}
}
