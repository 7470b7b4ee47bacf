// Package config provides unified configuration loading for gridnet.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/gridnet/internal/network"
	"gopkg.in/yaml.v3"
)

// GridnetConfig contains all gridnet configuration settings.
type GridnetConfig struct {
	// Logging contains settings for operational and transition logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Server contains settings for the local view server.
	Server ServerConfig `json:"server" yaml:"server"`

	// Network optionally overrides the reference weights. The network is
	// still constant for the lifetime of the process.
	Network NetworkConfig `json:"network" yaml:"network"`
}

// LoggingConfig configures gridnet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables transition logging to ~/.gridnet/transitions.jsonl.
	// "trace" additionally logs every emitted snapshot.
	Level string `json:"level" yaml:"level"`
}

// ServerConfig configures the local HTTP view server.
type ServerConfig struct {
	// Addr is the listen address. Must be a loopback host. Port 0 lets the OS pick.
	Addr string `json:"addr" yaml:"addr"`

	// OpenBrowser opens the page in the default browser once the server is up.
	OpenBrowser bool `json:"open_browser" yaml:"open_browser"`
}

// NetworkConfig holds optional weight overrides. Empty fields keep the reference values.
type NetworkConfig struct {
	InputToHidden  [][]int  `json:"input_to_hidden,omitempty" yaml:"input_to_hidden,omitempty"`
	HiddenToOutput [][]bool `json:"hidden_to_output,omitempty" yaml:"hidden_to_output,omitempty"`
}

// Default returns a GridnetConfig with sensible defaults.
func Default() *GridnetConfig {
	return &GridnetConfig{
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:        "localhost:0",
			OpenBrowser: true,
		},
	}
}

// Dir returns the gridnet home directory (~/.gridnet).
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gridnet"), nil
}

// Load loads configuration from path, or from the default location when path is empty,
// then applies environment variables.
// Order: defaults -> config file -> environment variables
func Load(path string) (*GridnetConfig, error) {
	config := Default()

	if path == "" {
		if dir, err := Dir(); err == nil {
			candidate := filepath.Join(dir, "config.yaml")
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*GridnetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *GridnetConfig) Validate() error {
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	host, _, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server addr %q: %w", c.Server.Addr, err)
	}
	if !isLoopback(host) {
		return fmt.Errorf("server addr %q must bind a loopback host", c.Server.Addr)
	}

	if _, err := c.BuildNetwork(); err != nil {
		return fmt.Errorf("invalid network: %w", err)
	}

	return nil
}

// BuildNetwork returns the network described by the config, falling back to the
// reference weights and mask for any section left empty.
func (c *GridnetConfig) BuildNetwork() (*network.Network, error) {
	weights := network.DefaultWeights()
	if len(c.Network.InputToHidden) > 0 {
		weights = c.Network.InputToHidden
	}
	mask := network.DefaultMask()
	if len(c.Network.HiddenToOutput) > 0 {
		mask = c.Network.HiddenToOutput
	}
	return network.New(weights, mask)
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *GridnetConfig) {
	if v := os.Getenv("GRIDNET_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("GRIDNET_ADDR"); v != "" {
		config.Server.Addr = v
	}

	if v := os.Getenv("GRIDNET_OPEN_BROWSER"); v != "" {
		config.Server.OpenBrowser = v == "true" || v == "1"
	}
}
