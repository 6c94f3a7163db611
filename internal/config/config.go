package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a3tai/mcp-fer-extract/internal/extract"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultCacheTTL    = 10 * time.Minute

	// Directory permissions
	DefaultDirPerm = 0o750

	// EnvPrefix prefixes every environment variable, e.g. MCP_FER_DIR.
	EnvPrefix = "MCP_FER"
)

// Viper keys, also used as flag names.
const (
	keyMode        = "mode"
	keyHost        = "host"
	keyPort        = "port"
	keyDir         = "dir"
	keyLogLevel    = "loglevel"
	keyMaxFileSize = "maxfilesize"
	keyProfile     = "profile"
	keyCacheTTL    = "cachettl"
	keyConfig      = "config"
)

// ErrVersionRequested is returned when the command line asks for the version.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the FER extraction server and CLI
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Documents are only read from below this directory
	DocumentDirectory string

	// Extraction configuration
	Profile  string        // extraction profile name (v1, v3, v5)
	CacheTTL time.Duration // 0 disables the result cache

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum document size in bytes
	ConfigFile  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio,
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		Profile:           extract.DefaultProfile,
		CacheTTL:          DefaultCacheTTL,
		Version:           "1.0.0",
		ServerName:        "mcp-fer-extract",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
	}
}

// LoadFromFlags parses the process command line and returns a configuration
func LoadFromFlags() (*Config, error) {
	setupUsageMessage()

	if err := checkVersionFlag(os.Args[1:]); err != nil {
		return nil, err
	}

	return Load(pflag.CommandLine, os.Args[1:])
}

// Load defines the server flags on fs, parses args and resolves the
// configuration.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	DefineFlags(fs, DefaultConfig(), true)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return Resolve(fs)
}

// Resolve builds the configuration from an already parsed flag set.
// Precedence: flags, then MCP_FER_* environment, then the config file,
// then defaults. Flags missing from fs are skipped.
func Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	setupViperEnvironment(v, cfg)
	bindFlagsToViper(v, fs)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	if err := populateConfigFromViper(v, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyMode, cfg.Mode)
	v.SetDefault(keyHost, cfg.Host)
	v.SetDefault(keyPort, cfg.Port)
	v.SetDefault(keyDir, cfg.DocumentDirectory)
	v.SetDefault(keyLogLevel, cfg.LogLevel)
	v.SetDefault(keyMaxFileSize, cfg.MaxFileSize)
	v.SetDefault(keyProfile, cfg.Profile)
	v.SetDefault(keyCacheTTL, cfg.CacheTTL.String())
	v.SetDefault(keyConfig, "")
}

// DefineFlags sets up the command line flags on fs. Server-only flags
// (mode, host, port) are added when server is true.
func DefineFlags(fs *pflag.FlagSet, cfg *Config, server bool) {
	if server {
		fs.String(keyMode, cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
		fs.String(keyHost, cfg.Host, "Server host address (server mode only)")
		fs.Int(keyPort, cfg.Port, "Server port (server mode only)")
	}
	fs.String(keyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String(keyDir, cfg.DocumentDirectory, "Directory containing FER, specification, claims and prior-art documents")
	fs.Int64(keyMaxFileSize, cfg.MaxFileSize, "Maximum document size in bytes")
	fs.String(keyProfile, cfg.Profile, "Extraction profile ("+strings.Join(extract.Profiles(), ", ")+")")
	fs.Duration(keyCacheTTL, cfg.CacheTTL, "Result cache lifetime (0 disables the cache)")
	fs.String(keyConfig, cfg.ConfigFile, "Optional config file (yaml, json or toml)")
}

// bindFlagsToViper binds the flags present on fs to viper configuration
func bindFlagsToViper(v *viper.Viper, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}
	for _, key := range []string{
		keyMode, keyHost, keyPort, keyDir, keyLogLevel,
		keyMaxFileSize, keyProfile, keyCacheTTL, keyConfig,
	} {
		if flag := fs.Lookup(key); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// readConfigFile merges the file named by the config key, if any.
func readConfigFile(v *viper.Viper) error {
	path := v.GetString(keyConfig)
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP FER Extract - A Model Context Protocol server for patent examination reports\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/filings                   "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --profile=v3 --cachettl=0                "+
			"# older extraction profile, no cache\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # SSE server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_DIR         Document directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_MAXFILESIZE Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_PROFILE     Extraction profile\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_CACHETTL    Result cache lifetime\n")
		fmt.Fprintf(os.Stderr, "  MCP_FER_CONFIG      Config file\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) error {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) error {
	cfg.Mode = v.GetString(keyMode)
	cfg.Host = v.GetString(keyHost)
	cfg.Port = v.GetInt(keyPort)
	cfg.DocumentDirectory = v.GetString(keyDir)
	cfg.LogLevel = strings.ToLower(v.GetString(keyLogLevel))
	cfg.MaxFileSize = v.GetInt64(keyMaxFileSize)
	cfg.Profile = strings.ToLower(v.GetString(keyProfile))
	cfg.ConfigFile = v.GetString(keyConfig)

	ttl, err := time.ParseDuration(v.GetString(keyCacheTTL))
	if err != nil {
		return fmt.Errorf("invalid cache ttl %q: %w", v.GetString(keyCacheTTL), err)
	}
	cfg.CacheTTL = ttl

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	// Check if document directory exists, create if it doesn't
	if _, err := os.Stat(c.DocumentDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocumentDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create document directory %s: %w", c.DocumentDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.DocumentDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if _, ok := extract.ProfileOptions(c.Profile); !ok {
		return fmt.Errorf("unknown extraction profile: %s (must be one of: %s)",
			c.Profile, strings.Join(extract.Profiles(), ", "))
	}

	if c.CacheTTL < 0 {
		return errors.New("cache ttl cannot be negative")
	}

	return nil
}

// ExtractOptions returns the extraction options of the configured profile.
func (c *Config) ExtractOptions() extract.Options {
	if opts, ok := extract.ProfileOptions(c.Profile); ok {
		return opts
	}
	return extract.DefaultOptions()
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, Profile: %s, "+
		"CacheTTL: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.Profile, c.CacheTTL, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
