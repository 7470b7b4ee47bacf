package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/gridnet/internal/models"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if config.Server.Addr != "localhost:0" {
		t.Errorf("expected Server.Addr 'localhost:0', got '%s'", config.Server.Addr)
	}
	if !config.Server.OpenBrowser {
		t.Error("expected OpenBrowser to be true by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: debug
server:
  addr: 127.0.0.1:8080
  open_browser: false
network:
  hidden_to_output:
    - [true, false]
    - [true, false]
    - [false, true]
    - [false, true]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("expected Level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected Addr '127.0.0.1:8080', got '%s'", config.Server.Addr)
	}
	if config.Server.OpenBrowser {
		t.Error("expected OpenBrowser to be false")
	}

	n, err := config.BuildNetwork()
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if !n.Connected(0, 0) || n.Connected(0, 1) {
		t.Error("mask override not applied")
	}
	// Weights were not overridden.
	if n.Weight(0, 0) != 1 || n.Weight(0, 1) != 0 {
		t.Error("expected reference weights when input_to_hidden is absent")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolateHome(t)
	configPath := filepath.Join(t.TempDir(), "gridnet.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: trace\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("Level = %q, want trace", config.Logging.Level)
	}
}

func TestLoad_DefaultLocation(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".gridnet")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  open_browser: false\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Server.OpenBrowser {
		t.Error("expected OpenBrowser false from ~/.gridnet/config.yaml")
	}
}

func TestLoad_NoFile(t *testing.T) {
	isolateHome(t)

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Server.Addr != "localhost:0" {
		t.Errorf("Addr = %q, want default", config.Server.Addr)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	isolateHome(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDNET_LOG_LEVEL", "debug")
	t.Setenv("GRIDNET_ADDR", "[::1]:9000")
	t.Setenv("GRIDNET_OPEN_BROWSER", "0")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "debug" {
		t.Errorf("expected Level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Server.Addr != "[::1]:9000" {
		t.Errorf("expected Addr '[::1]:9000', got '%s'", config.Server.Addr)
	}
	if config.Server.OpenBrowser {
		t.Error("expected OpenBrowser to be false")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GridnetConfig)
		wantErr string
	}{
		{"valid default", func(c *GridnetConfig) {}, ""},
		{"empty level allowed", func(c *GridnetConfig) { c.Logging.Level = "" }, ""},
		{"bad level", func(c *GridnetConfig) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"missing port", func(c *GridnetConfig) { c.Server.Addr = "localhost" }, "invalid server addr"},
		{"public host", func(c *GridnetConfig) { c.Server.Addr = "0.0.0.0:8080" }, "loopback"},
		{"named public host", func(c *GridnetConfig) { c.Server.Addr = "example.com:80" }, "loopback"},
		{"ipv4 loopback", func(c *GridnetConfig) { c.Server.Addr = "127.0.0.1:0" }, ""},
		{"short weights", func(c *GridnetConfig) { c.Network.InputToHidden = [][]int{{1, 0, 1, 0}} }, "invalid network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildNetwork_ShapeMismatch(t *testing.T) {
	c := Default()
	c.Network.HiddenToOutput = [][]bool{{true}, {true}, {true}, {true}}

	_, err := c.BuildNetwork()
	var shapeErr *models.ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("BuildNetwork() error = %v, want *ShapeMismatchError", err)
	}
	if shapeErr.What != "mask" {
		t.Errorf("What = %q, want mask", shapeErr.What)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

// isolateHome points HOME at a temp directory so tests never read a real ~/.gridnet.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	t.Setenv("HOME", home)
	return home
}
