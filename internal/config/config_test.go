package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, StoreFirestore, cfg.StoreBackend)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, DefaultParseTimeout, cfg.ParseTimeout)
	assert.Empty(t, cfg.ParseURL)
	assert.Equal(t, DefaultOperator, cfg.Operator)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDirectory)
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.StoreBackend = StoreMemory
		cfg.DataDirectory = filepath.Join(t.TempDir(), "data")
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid memory config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid firestore config",
			mutate: func(c *Config) {
				c.StoreBackend = StoreFirestore
				c.FirestoreProject = "clinic-records"
			},
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port must be between",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port must be between",
		},
		{
			name:    "unknown store backend",
			mutate:  func(c *Config) { c.StoreBackend = "postgres" },
			wantErr: "store backend",
		},
		{
			name:    "firestore without project",
			mutate:  func(c *Config) { c.StoreBackend = StoreFirestore },
			wantErr: "project ID cannot be empty",
		},
		{
			name:    "empty data directory",
			mutate:  func(c *Config) { c.DataDirectory = "" },
			wantErr: "data directory cannot be empty",
		},
		{
			name:    "non-positive max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: "file size must be positive",
		},
		{
			name:    "non-positive parse timeout",
			mutate:  func(c *Config) { c.ParseTimeout = -time.Second },
			wantErr: "parse timeout must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateCreatesDataDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StoreBackend = StoreMemory
	cfg.DataDirectory = filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, cfg.Validate())
	assert.DirExists(t, cfg.DataDirectory)
}

func TestAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9090}
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
}

func TestIsDebug(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.True(t, cfg.IsDebug())

	cfg.LogLevel = "info"
	assert.False(t, cfg.IsDebug())
}
