// Package config handles the XDG configuration directory and the optional
// config.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"todolist/internal/storage"
	"todolist/internal/todo"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// StorageDir is the file backend's directory inside the config dir.
	StorageDir = "storage"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are read from config.yaml over the defaults.
	Settings Settings

	// Log is set by the dispatcher before a command runs.
	Log *log.Entry
}

// Settings mirrors config.yaml.
type Settings struct {
	Storage         StorageSettings `yaml:"storage"`
	TimestampLayout string          `yaml:"timestamp_layout"`
	Server          ServerSettings  `yaml:"server"`
}

// StorageSettings selects the persistence backend.
type StorageSettings struct {
	Backend  string `yaml:"backend"`
	Key      string `yaml:"key"`
	RedisURL string `yaml:"redis_url"`
}

// ServerSettings configures `todo serve`.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Backend: storage.BackendFile,
			Key:     storage.DefaultTasksKey,
		},
		TimestampLayout: todo.DefaultTimestampLayout,
		Server: ServerSettings{
			Addr: "127.0.0.1:8080",
		},
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings are loaded from config.yaml when it exists.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings()}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StoragePath returns the directory used by the file backend.
func (c *Config) StoragePath() string {
	return filepath.Join(c.Dir, StorageDir)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", SettingsFile, err)
	}

	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return c.Settings.validate()
}

func (s *Settings) validate() error {
	s.Storage.Backend = strings.ToLower(strings.TrimSpace(s.Storage.Backend))
	switch s.Storage.Backend {
	case "":
		s.Storage.Backend = storage.BackendFile
	case storage.BackendFile, storage.BackendMemory:
	case storage.BackendRedis:
		if s.Storage.RedisURL == "" {
			return fmt.Errorf("invalid %s: storage.redis_url required for redis backend", SettingsFile)
		}
	default:
		return fmt.Errorf("invalid %s: unknown storage backend: %s", SettingsFile, s.Storage.Backend)
	}
	if strings.TrimSpace(s.Storage.Key) == "" {
		s.Storage.Key = storage.DefaultTasksKey
	}
	if s.TimestampLayout == "" {
		s.TimestampLayout = DefaultSettings().TimestampLayout
	}
	if s.Server.Addr == "" {
		s.Server.Addr = DefaultSettings().Server.Addr
	}
	return nil
}
