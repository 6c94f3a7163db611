package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a3tai/mcp-fer-extract/internal/cli"
)

var (
	version   = "dev" // This will be set by build flags
	buildTime = ""    // This will be set by build flags
	gitCommit = ""    // This will be set by build flags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{Version: version, BuildTime: buildTime, GitCommit: gitCommit}
	if err := cli.Execute(ctx, info, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
