package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Store backends
	StoreFirestore = "firestore"
	StoreMemory    = "memory"

	// Default values
	DefaultPort         = 8000
	DefaultHost         = "127.0.0.1"
	DefaultLogLevel     = "info"
	DefaultMaxFileSize  = 20 * 1024 * 1024 // 20MB
	DefaultParseTimeout = 60 * time.Second
	DefaultOperator     = "system"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the lab report services.
type Config struct {
	// Server configuration
	Host string
	Port int

	// Storage configuration
	DataDirectory    string // where uploaded PDFs are kept
	StoreBackend     string // "firestore" or "memory"
	FirestoreProject string
	CredentialsFile  string
	CollectionPrefix string

	// Pipeline configuration
	MaxFileSize  int64 // maximum upload size in bytes
	ParseTimeout time.Duration
	ParseURL     string // remote parse service base URL; empty parses in-process
	Operator     string // name attributed to activity audit entries

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		DataDirectory:    filepath.Join(currentDir, "data"),
		StoreBackend:     StoreFirestore,
		CollectionPrefix: "",
		MaxFileSize:      DefaultMaxFileSize,
		ParseTimeout:     DefaultParseTimeout,
		Operator:         DefaultOperator,
		Version:          "1.0.0",
		LogLevel:         DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.DataDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDirectory); err == nil {
			cfg.DataDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("LABREPORTS")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("datadir", cfg.DataDirectory)
	viper.SetDefault("store", cfg.StoreBackend)
	viper.SetDefault("project", cfg.FirestoreProject)
	viper.SetDefault("credentials", cfg.CredentialsFile)
	viper.SetDefault("collectionprefix", cfg.CollectionPrefix)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("parsetimeout", cfg.ParseTimeout)
	viper.SetDefault("parseurl", cfg.ParseURL)
	viper.SetDefault("operator", cfg.Operator)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("datadir", cfg.DataDirectory, "Directory where uploaded PDFs are stored")
	pflag.String("store", cfg.StoreBackend, "Record store backend: 'firestore' or 'memory'")
	pflag.String("project", cfg.FirestoreProject, "Firestore project ID (firestore backend)")
	pflag.String("credentials", cfg.CredentialsFile, "Path to a service account credentials file")
	pflag.String("collectionprefix", cfg.CollectionPrefix, "Prefix added to every store collection name")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF upload size in bytes")
	pflag.Duration("parsetimeout", cfg.ParseTimeout, "Timeout for parsing a single report")
	pflag.String("parseurl", cfg.ParseURL, "Base URL of a remote parse service; empty parses in-process")
	pflag.String("operator", cfg.Operator, "Operator name attributed to activity log entries")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("datadir", pflag.Lookup("datadir"))
	_ = viper.BindPFlag("store", pflag.Lookup("store"))
	_ = viper.BindPFlag("project", pflag.Lookup("project"))
	_ = viper.BindPFlag("credentials", pflag.Lookup("credentials"))
	_ = viper.BindPFlag("collectionprefix", pflag.Lookup("collectionprefix"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("parsetimeout", pflag.Lookup("parsetimeout"))
	_ = viper.BindPFlag("parseurl", pflag.Lookup("parseurl"))
	_ = viper.BindPFlag("operator", pflag.Lookup("operator"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DataDirectory = viper.GetString("datadir")
	cfg.StoreBackend = viper.GetString("store")
	cfg.FirestoreProject = viper.GetString("project")
	cfg.CredentialsFile = viper.GetString("credentials")
	cfg.CollectionPrefix = viper.GetString("collectionprefix")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.ParseTimeout = viper.GetDuration("parsetimeout")
	cfg.ParseURL = viper.GetString("parseurl")
	cfg.Operator = viper.GetString("operator")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.StoreBackend != StoreFirestore && c.StoreBackend != StoreMemory {
		return fmt.Errorf("store backend must be '%s' or '%s'", StoreFirestore, StoreMemory)
	}
	if c.StoreBackend == StoreFirestore && c.FirestoreProject == "" {
		return errors.New("firestore project ID cannot be empty with the firestore backend")
	}

	if c.DataDirectory == "" {
		return errors.New("data directory cannot be empty")
	}
	if _, err := os.Stat(c.DataDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create data directory %s: %w", c.DataDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access data directory %s: %w", c.DataDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.ParseTimeout <= 0 {
		return errors.New("parse timeout must be positive")
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

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
