package main

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-fer-extract/internal/config"
	"github.com/a3tai/mcp-fer-extract/internal/mcp"
)

const (
	testVersion = "1.2.3"
	devVersion  = "dev"
)

func TestPrintVersion(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = testVersion
	buildTime = "2023-12-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	var buf bytes.Buffer
	printVersion(&buf)
	output := buf.String()

	expectedLines := []string{
		"MCP FER Extract",
		"Version: " + testVersion,
		"Build Time: 2023-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with: " + runtime.Version(),
	}
	for _, expected := range expectedLines {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain %q, got: %s", expected, output)
		}
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	if version != devVersion {
		t.Skipf("version stamped at build time: %s", version)
	}

	var buf bytes.Buffer
	printVersion(&buf)

	if !strings.Contains(buf.String(), "Version: dev") {
		t.Errorf("Expected default version in output, got: %s", buf.String())
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DocumentDirectory = t.TempDir()
	return cfg
}

func TestRun_StdioEndOfInput(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, cfg, zerolog.Nop(), mcp.WithStdio(strings.NewReader(""), io.Discard))
	if err != nil {
		t.Errorf("run() error = %v, want nil", err)
	}
}

func TestRun_InvalidDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.DocumentDirectory = ""

	err := run(context.Background(), cfg, zerolog.Nop(), mcp.WithStdio(strings.NewReader(""), io.Discard))
	if err == nil || !strings.Contains(err.Error(), "failed to create service") {
		t.Errorf("run() error = %v, want failed to create service", err)
	}
}

func TestRun_LogsShutdown(t *testing.T) {
	cfg := testConfig(t)

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	if err := run(context.Background(), cfg, logger, mcp.WithStdio(strings.NewReader(""), io.Discard)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(logs.String(), "server stopped") {
		t.Errorf("expected shutdown log line, got: %s", logs.String())
	}
}
