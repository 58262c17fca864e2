package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the bind endpoints for the two IPC sockets.
type Server struct {
	BroadcastBind string `toml:"broadcast_bind"`
	RequestBind   string `toml:"request_bind"`
}

// Daemon contains runtime settings for the daemon process itself.
type Daemon struct {
	RuntimeDir string `toml:"runtime_dir"`
	DeviceID   string `toml:"device_id"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`

	// Battery state broadcasts can fire several times a minute, so their
	// per-send log line is off unless explicitly requested.
	LogBatteryBroadcasts bool `toml:"log_battery_broadcasts"`
}

// Config encapsulates all configuration values for pitopd.
type Config struct {
	Server  Server  `toml:"server"`
	Daemon  Daemon  `toml:"daemon"`
	Logging Logging `toml:"logging"`
}

// envBatteryLogging enables battery broadcast logging when set to "1".
const envBatteryLogging = "PT_LOG_BATTERY_CHANGE"

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pitopd/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// path is the file that was read; found reports whether a file existed at
// all. A missing file yields defaults with no error.
func Load(path string) (*Config, string, bool, error) {
	resolved, explicit, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		decoder := toml.NewDecoder(strings.NewReader(string(data)))
		if err := decoder.Decode(&cfg); err != nil {
			return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, resolved, false, fmt.Errorf("config file %s does not exist", resolved)
		}
	default:
		return nil, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}
	found := err == nil

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, resolved, found, err
	}
	if err := cfg.validate(); err != nil {
		return nil, resolved, found, err
	}
	return &cfg, resolved, found, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", true, err
		}
		return expanded, true, nil
	}
	fallback, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return fallback, false, nil
}

func applyEnv(cfg *Config) {
	if os.Getenv(envBatteryLogging) == "1" {
		cfg.Logging.LogBatteryBroadcasts = true
	}
}

func (c *Config) normalize() error {
	var err error
	if c.Daemon.RuntimeDir, err = expandPath(c.Daemon.RuntimeDir); err != nil {
		return err
	}
	if c.Logging.LogDir != "" {
		if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDirectories creates the directories the daemon writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Daemon.RuntimeDir}
	if c.Logging.LogDir != "" {
		dirs = append(dirs, c.Logging.LogDir)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}
