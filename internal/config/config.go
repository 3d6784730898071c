package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/assafBarash/node-package-bootstrapper/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyPackageManager = "package_manager"
	KeyIgnoreTemplate = "ignore_template"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyEnvFile        = "env_file"
)

var defaults = map[string]string{
	KeyPackageManager: "npm",
	KeyIgnoreTemplate: "",
	KeyLogLevel:       "warn",
	KeyLogFormat:      "text",
	KeyEnvFile:        "",
}

// Settings is the resolved configuration after file, env, and defaults.
type Settings struct {
	PackageManager string
	IgnoreTemplate string
	LogLevel       string
	LogFormat      string
	EnvFile        string
}

// Dir returns the config directory. BOOTSTRAPPER_HOME overrides the default
// ~/.bootstrapper.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
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

// Keys returns the recognized keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// IsKnown reports whether key is a recognized setting.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the resolved settings. Load must have been called.
func Current() Settings {
	return Settings{
		PackageManager: strings.TrimSpace(Get(KeyPackageManager)),
		IgnoreTemplate: Get(KeyIgnoreTemplate),
		LogLevel:       Get(KeyLogLevel),
		LogFormat:      Get(KeyLogFormat),
		EnvFile:        Get(KeyEnvFile),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
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
