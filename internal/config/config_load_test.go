package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("mcp-fer-extract", pflag.ContinueOnError)
}

// clearEnvVars unsets every MCP_FER_* variable for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MODE", "HOST", "PORT", "DIR", "LOGLEVEL", "MAXFILESIZE", "PROFILE", "CACHETTL", "CONFIG"} {
		name := EnvPrefix + "_" + key
		if old, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, old) })
		}
		os.Unsetenv(name)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("Load() Mode = %v, want %v", cfg.Mode, "stdio")
	}
	if cfg.Port != 8080 {
		t.Errorf("Load() Port = %v, want %v", cfg.Port, 8080)
	}
	if cfg.Profile != "v5" {
		t.Errorf("Load() Profile = %v, want %v", cfg.Profile, "v5")
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("Load() CacheTTL = %v, want %v", cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.DocumentDirectory == "" || !filepath.IsAbs(cfg.DocumentDirectory) {
		t.Errorf("Load() DocumentDirectory = %q, want absolute path", cfg.DocumentDirectory)
	}
}

func TestLoad_ValidFlags(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()

	cfg, err := Load(newFlagSet(), []string{
		"--mode=server",
		"--host=0.0.0.0",
		"--port=9000",
		"--dir=" + dir,
		"--loglevel=DEBUG",
		"--maxfilesize=2048",
		"--profile=v3",
		"--cachettl=30s",
	})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != "server" || cfg.Host != "0.0.0.0" || cfg.Port != 9000 {
		t.Errorf("Load() server settings = %s %s %d", cfg.Mode, cfg.Host, cfg.Port)
	}
	if cfg.DocumentDirectory != dir {
		t.Errorf("Load() DocumentDirectory = %v, want %v", cfg.DocumentDirectory, dir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("Load() MaxFileSize = %v, want 2048", cfg.MaxFileSize)
	}
	if cfg.Profile != "v3" {
		t.Errorf("Load() Profile = %v, want v3", cfg.Profile)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("Load() CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()

	t.Setenv("MCP_FER_MODE", "server")
	t.Setenv("MCP_FER_PORT", "3000")
	t.Setenv("MCP_FER_DIR", dir)
	t.Setenv("MCP_FER_LOGLEVEL", "warn")
	t.Setenv("MCP_FER_PROFILE", "v1")
	t.Setenv("MCP_FER_CACHETTL", "0")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != "server" {
		t.Errorf("Load() Mode = %v, want server", cfg.Mode)
	}
	if cfg.Port != 3000 {
		t.Errorf("Load() Port = %v, want 3000", cfg.Port)
	}
	if cfg.DocumentDirectory != dir {
		t.Errorf("Load() DocumentDirectory = %v, want %v", cfg.DocumentDirectory, dir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.Profile != "v1" {
		t.Errorf("Load() Profile = %v, want v1", cfg.Profile)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("Load() CacheTTL = %v, want 0", cfg.CacheTTL)
	}
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("MCP_FER_MODE", "server")
	t.Setenv("MCP_FER_PROFILE", "v1")

	cfg, err := Load(newFlagSet(), []string{"--mode=stdio", "--profile=v5"})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("Load() Mode = %v, want stdio (should override env)", cfg.Mode)
	}
	if cfg.Profile != "v5" {
		t.Errorf("Load() Profile = %v, want v5 (should override env)", cfg.Profile)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "fer.yaml")
	content := "profile: v3\ncachettl: 5m\nmaxfilesize: 4096\ndir: " + dir + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("MCP_FER_PROFILE", "v1")

	cfg, err := Load(newFlagSet(), []string{"--config=" + path, "--maxfilesize=8192"})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Profile != "v1" {
		t.Errorf("Load() Profile = %v, want v1 (env overrides file)", cfg.Profile)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Load() CacheTTL = %v, want 5m from file", cfg.CacheTTL)
	}
	if cfg.MaxFileSize != 8192 {
		t.Errorf("Load() MaxFileSize = %v, want 8192 (flag overrides file)", cfg.MaxFileSize)
	}
	if cfg.DocumentDirectory != dir {
		t.Errorf("Load() DocumentDirectory = %v, want %v", cfg.DocumentDirectory, dir)
	}
	if cfg.ConfigFile != path {
		t.Errorf("Load() ConfigFile = %v, want %v", cfg.ConfigFile, path)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid mode", args: []string{"--mode=invalid", "--dir=" + dir}, wantErr: "mode must be either 'stdio' or 'server'"},
		{name: "invalid port", args: []string{"--mode=server", "--port=99999", "--dir=" + dir}, wantErr: "port must be between 1 and 65535"},
		{name: "invalid log level", args: []string{"--loglevel=invalid", "--dir=" + dir}, wantErr: "invalid log level"},
		{name: "unknown profile", args: []string{"--profile=v2", "--dir=" + dir}, wantErr: "unknown extraction profile"},
		{name: "negative ttl", args: []string{"--cachettl=-1s", "--dir=" + dir}, wantErr: "cache ttl cannot be negative"},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: "failed to parse flags"},
		{name: "missing config file", args: []string{"--config=" + filepath.Join(dir, "missing.yaml")}, wantErr: "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)

			_, err := Load(newFlagSet(), tt.args)
			if err == nil {
				t.Fatalf("Load() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidTTLFromEnvironment(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("MCP_FER_CACHETTL", "soon")

	_, err := Load(newFlagSet(), nil)
	if err == nil || !strings.Contains(err.Error(), "invalid cache ttl") {
		t.Errorf("Load() error = %v, want invalid cache ttl", err)
	}
}

func TestResolve_CLIFlagSet(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()

	fs := newFlagSet()
	DefineFlags(fs, DefaultConfig(), false)

	if fs.Lookup("mode") != nil {
		t.Error("CLI flag set should not define server-only flags")
	}

	if err := fs.Parse([]string{"--dir=" + dir, "--profile=v1"}); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	cfg, err := Resolve(fs)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if cfg.Mode != ModeStdio {
		t.Errorf("Resolve() Mode = %v, want default stdio", cfg.Mode)
	}
	if cfg.Profile != "v1" {
		t.Errorf("Resolve() Profile = %v, want v1", cfg.Profile)
	}
}

func TestCheckVersionFlag(t *testing.T) {
	for _, arg := range []string{"-v", "--version", "-version"} {
		if err := checkVersionFlag([]string{arg}); !errors.Is(err, ErrVersionRequested) {
			t.Errorf("checkVersionFlag(%s) = %v, want ErrVersionRequested", arg, err)
		}
	}
	if err := checkVersionFlag([]string{"--dir=/tmp"}); err != nil {
		t.Errorf("checkVersionFlag() unexpected error: %v", err)
	}
}
