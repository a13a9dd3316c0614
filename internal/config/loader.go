package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests.
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/kubesh"
	configFileName = "config.yaml"
)

// Load layers the user config file over the defaults. A missing file is not
// an error; a present-but-unreadable one is.
func Load() (Settings, error) {
	settings := Defaults()

	path, err := userConfigPath()
	if err != nil {
		// No home dir: run with defaults, nothing to layer.
		return settings, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read config %s: %w", path, err)
	}
	var fromFile Settings
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return settings, fmt.Errorf("parse config %s: %w", path, err)
	}
	return merge(settings, fromFile), nil
}

// Save writes the settings to the user config file, creating the directory
// when needed. The `set` command calls this so preferences survive restarts.
func Save(settings Settings) error {
	path, err := userConfigPath()
	if err != nil {
		return fmt.Errorf("determine config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// UserDir returns the directory holding the config file and the shell
// history.
func UserDir() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir), nil
}

func userConfigPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
