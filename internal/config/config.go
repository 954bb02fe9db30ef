// Package config manages persistent user settings stored at
// ~/.rfext/config.yaml, with RFEXT_* environment variables taking
// precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohnotype/rfext/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Well-known configuration keys.
const (
	// KeyRepo is the "owner/repo" GitHub repository releases are published to.
	KeyRepo = "github.repo"
	// KeyToken is the GitHub API token used for publishing.
	KeyToken = "github.token"
	// KeyBundle is the default path of the extension bundle in the working tree.
	KeyBundle = "bundle.path"
)

// Dir returns the path to the config directory (~/.rfext/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.rfext/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Token resolves the GitHub token: config value first, then the
// conventional GITHUB_TOKEN environment variable.
func Token() string {
	if t := Get(KeyToken); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}
