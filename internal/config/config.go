package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds where the bridge is and how lumen identifies itself to it.
type Config struct {
	Host             string        `mapstructure:"host"`
	Username         string        `mapstructure:"username"`
	DeviceType       string        `mapstructure:"device_type"`
	LogFile          string        `mapstructure:"log_file"`
	Discover         bool          `mapstructure:"discover"`
	DiscoveryTimeout time.Duration `mapstructure:"discovery_timeout"`
}

const (
	defaultConfigPath       = "~/.config/lumen/config.toml"
	defaultLogFile          = "~/.local/state/lumen/lumen.log"
	defaultDiscoveryTimeout = 3 * time.Second

	// Environment variables that override the file.
	EnvHost     = "HOST"
	EnvUsername = "USERNAME_KEY"
	envPrefix   = "LUMEN"

	appName          = "lumen"
	maxDeviceNameLen = 19
)

// Load reads the config file at path (or the default location), overlays
// the environment and fills in defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(resolved)
	v.SetConfigType("toml")
	v.SetDefault("host", "")
	v.SetDefault("username", "")
	v.SetDefault("device_type", DefaultDeviceType())
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("discover", true)
	v.SetDefault("discovery_timeout", defaultDiscoveryTimeout)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv("host", EnvHost); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("username", EnvUsername); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.DeviceType = strings.TrimSpace(cfg.DeviceType)
	if cfg.DeviceType == "" {
		cfg.DeviceType = DefaultDeviceType()
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)
	if cfg.DiscoveryTimeout <= 0 {
		cfg.DiscoveryTimeout = defaultDiscoveryTimeout
	}

	return cfg, nil
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// DefaultDeviceType returns "lumen#<hostname>", with the device part cut to
// the length the bridge accepts.
func DefaultDeviceType() string {
	name, err := os.Hostname()
	if err != nil || strings.TrimSpace(name) == "" {
		name = "desktop"
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if len(name) > maxDeviceNameLen {
		name = name[:maxDeviceNameLen]
	}
	return appName + "#" + name
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
