// Package main is the entry point for the tado CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tado/internal/api"
	"tado/internal/cli"
	"tado/internal/commands"
	"tado/internal/config"
	"tado/internal/service"
	"tado/internal/session"
	"tado/pkg/logger"

	// Import all command packages to register them via init()
	_ "tado/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, sess *session.Store) (service.Service, error) {
		var zl *zap.Logger
		if cfg.Debug {
			var err error
			zl, err = logger.New(logger.Config{Level: "debug", Encoding: "console"})
			if err != nil {
				return nil, err
			}
		}
		return api.New(cfg, sess, zl), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
