// Package main - Entry point for the payoff HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"payoff/api"
	"payoff/internal/config"
	"payoff/internal/logging"
	"payoff/internal/version"
)

func main() {
	cfgPath := flag.String("config", "", "config file (YAML or JSON)")
	addr := flag.String("addr", "", "server address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	srv, err := api.NewServer(version.Version, cfg, logging.Logger)
	if err != nil {
		logging.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("payoff server v%s\n", version.Version)
	fmt.Printf("   API: http://localhost%s\n", cfg.Server.Addr)
	fmt.Println()

	if err := srv.Run(ctx); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
