package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mdtex/mcp-table-extractor/internal/markdown"
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

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the table extraction MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	DocumentDirectory string

	// Extraction configuration
	MergeStrategy      string
	DetectCaptions     bool
	SkipSubHeaders     bool
	SubHeaderThreshold float64

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum document file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:               ModeStdio, // Default to stdio mode for MCP compatibility
		Host:               DefaultHost,
		Port:               DefaultPort,
		DocumentDirectory:  currentDir,
		MergeStrategy:      string(markdown.MergeIdenticalHeaders),
		DetectCaptions:     true,
		SkipSubHeaders:     true,
		SubHeaderThreshold: markdown.DefaultSubHeaderThreshold,
		Version:            "1.0.0",
		ServerName:         "mcp-table-extractor",
		LogLevel:           DefaultLogLevel,
		MaxFileSize:        DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_MTE")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DocumentDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("mergestrategy", cfg.MergeStrategy)
	viper.SetDefault("detectcaptions", cfg.DetectCaptions)
	viper.SetDefault("skipsubheaders", cfg.SkipSubHeaders)
	viper.SetDefault("subheaderthreshold", cfg.SubHeaderThreshold)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DocumentDirectory, "Directory containing documents to extract tables from")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum document file size in bytes")
	pflag.String("merge-strategy", cfg.MergeStrategy,
		"How continuation tables are merged: none, identical_headers, compatible_columns")
	pflag.Bool("detect-captions", cfg.DetectCaptions, "Look for 'Table N.' captions above each table")
	pflag.Bool("skip-subheaders", cfg.SkipSubHeaders, "Fold mostly-empty sub-header rows into column names")
	pflag.Float64("subheader-threshold", cfg.SubHeaderThreshold,
		"Fraction of empty cells a row must exceed to count as a sub-header")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("mergestrategy", pflag.Lookup("merge-strategy"))
	_ = viper.BindPFlag("detectcaptions", pflag.Lookup("detect-captions"))
	_ = viper.BindPFlag("skipsubheaders", pflag.Lookup("skip-subheaders"))
	_ = viper.BindPFlag("subheaderthreshold", pflag.Lookup("subheader-threshold"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Table Extractor - A Model Context Protocol server that extracts tables from markdown and PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/manuscripts               "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --merge-strategy=compatible_columns      "+
			"# tolerant continuation merging\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_MODE               Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_HOST               Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_PORT               Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_DIR                Document directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_LOGLEVEL           Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_MAXFILESIZE        Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_MERGESTRATEGY      Continuation merge strategy\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_DETECTCAPTIONS     Caption detection on/off\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_SKIPSUBHEADERS     Sub-header folding on/off\n")
		fmt.Fprintf(os.Stderr, "  MCP_MTE_SUBHEADERTHRESHOLD Sub-header empty-cell threshold\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MergeStrategy = viper.GetString("mergestrategy")
	cfg.DetectCaptions = viper.GetBool("detectcaptions")
	cfg.SkipSubHeaders = viper.GetBool("skipsubheaders")
	cfg.SubHeaderThreshold = viper.GetFloat64("subheaderthreshold")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate document directory
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

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Extraction settings are rejected here, before any document is parsed
	if _, err := markdown.ParseMergeStrategy(c.MergeStrategy); err != nil {
		return err
	}
	if c.SubHeaderThreshold < 0 || c.SubHeaderThreshold >= 1 {
		return fmt.Errorf("sub-header threshold %v out of range [0, 1)", c.SubHeaderThreshold)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ExtractionOptions converts the configured extraction settings into pipeline
// options. Call Validate first; unknown strategies are caught there.
func (c *Config) ExtractionOptions() markdown.Options {
	strategy, err := markdown.ParseMergeStrategy(c.MergeStrategy)
	if err != nil {
		strategy = markdown.MergeIdenticalHeaders
	}
	return markdown.Options{
		Strategy:           strategy,
		DetectCaptions:     c.DetectCaptions,
		SkipSubHeaders:     c.SkipSubHeaders,
		SubHeaderThreshold: c.SubHeaderThreshold,
	}
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
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, MergeStrategy: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.MergeStrategy, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
