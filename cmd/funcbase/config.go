package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/funcbase/funcbase-go/funcbase"
	"github.com/funcbase/funcbase-go/libfb/logging"
)

// defaultEndpoint is the hosted platform; self-hosted deployments set
// their own endpoint in the config file.
const defaultEndpoint = "https://api.funcbase.io"

// Config is the CLI configuration loaded from ~/.funcbase.yaml.
type Config struct {
	// Endpoint is the Funcbase API base URL
	Endpoint string `yaml:"endpoint"`

	// Token is the API token
	Token string `yaml:"token"`

	// Log configures CLI logging
	Log logging.Config `yaml:"log"`

	// RateLimitPerMinute caps invocations issued by this CLI (0 = unlimited)
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// configPath resolves the config file location: --config flag, then
// FUNCBASE_CONFIG, then ~/.funcbase.yaml.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if p := os.Getenv("FUNCBASE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".funcbase.yaml")
}

// loadConfig loads the config file and applies environment and flag
// overrides. A missing file is not an error; defaults apply.
func loadConfig() (*Config, error) {
	config := &Config{}

	if path := configPath(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No config file, run on defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("FUNCBASE_ENDPOINT"); v != "" {
		config.Endpoint = v
	}
	if v := os.Getenv("FUNCBASE_TOKEN"); v != "" {
		config.Token = v
	}
	if flagEndpoint != "" {
		config.Endpoint = flagEndpoint
	}
	if flagToken != "" {
		config.Token = flagToken
	}
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}

	return config, nil
}

// newLogger builds the CLI logger from config and the --verbose flag.
func newLogger(config *Config) *zap.Logger {
	logConfig := config.Log
	if flagVerbose {
		logConfig.Level = "debug"
	}
	return logging.NewLogger(&logConfig)
}

// newClient builds an SDK client from the loaded configuration.
func newClient(config *Config, logger *zap.Logger) (*funcbase.Client, error) {
	opts := []funcbase.ClientOption{
		funcbase.WithLogger(logger),
	}
	if config.Token != "" {
		opts = append(opts, funcbase.WithToken(config.Token))
	}
	if config.RateLimitPerMinute > 0 {
		opts = append(opts, funcbase.WithRateLimit(config.RateLimitPerMinute))
	}
	return funcbase.NewClient(config.Endpoint, opts...)
}
