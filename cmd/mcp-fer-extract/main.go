package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-fer-extract/internal/config"
	"github.com/a3tai/mcp-fer-extract/internal/logging"
	"github.com/a3tai/mcp-fer-extract/internal/mcp"
	"github.com/a3tai/mcp-fer-extract/internal/service"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	// stdout carries the protocol in stdio mode, so logs always go to stderr.
	logger := logging.Setup(cfg.LogLevel, cfg.IsStdioMode(), os.Stderr)
	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}
}

// run serves MCP until ctx is cancelled or the transport ends.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...mcp.Option) error {
	svc, err := service.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mcp.NewServer(cfg, svc, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP FER Extract\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
