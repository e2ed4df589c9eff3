// Package config loads epicsync configuration from config.yaml with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton. Should be called
// once at application startup; safe to call again in tests.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	// Precedence: ~/.config/epicsync/config.yaml > ~/.epicsync/config.yaml
	configFileSet := false
	if configDir, err := os.UserConfigDir(); err == nil {
		configPath := filepath.Join(configDir, "epicsync", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			configFileSet = true
		}
	}
	if !configFileSet {
		if homeDir, err := os.UserHomeDir(); err == nil {
			configPath := filepath.Join(homeDir, ".epicsync", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file, e.g.
	// EPICSYNC_CACHE_DIR, EPICSYNC_RETRY_MAX_ATTEMPTS.
	v.SetEnvPrefix("EPICSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults()

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults() {
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("retry.max-attempts", 4)
	v.SetDefault("retry.base-delay", time.Second)
	v.SetDefault("board.title", "")
	v.SetDefault("labels.epic", "epic")
	v.SetDefault("labels.task", "epic-task")
	// Ordered filter ladder for external reconciliation. The empty string
	// means no label filter.
	v.SetDefault("labels.external-ladder", []string{"epic-task", "help wanted", ""})
}

func defaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".epicsync-cache"
	}
	return filepath.Join(homeDir, ".epicsync", "cache")
}

func ensure() {
	if v == nil {
		_ = Initialize()
	}
}

// CacheDir returns the directory holding snapshot files.
func CacheDir() string {
	ensure()
	return v.GetString("cache.dir")
}

// RetryMaxAttempts returns the total remote attempts including the first.
func RetryMaxAttempts() uint {
	ensure()
	return v.GetUint("retry.max-attempts")
}

// RetryBaseDelay returns the initial backoff interval for retries.
func RetryBaseDelay() time.Duration {
	ensure()
	return v.GetDuration("retry.base-delay")
}

// BoardTitle returns the configured project board title, empty when board
// tracking is disabled.
func BoardTitle() string {
	ensure()
	return v.GetString("board.title")
}

// EpicLabel returns the label applied to epic issues.
func EpicLabel() string {
	ensure()
	return v.GetString("labels.epic")
}

// TaskLabel returns the label applied to sub-item issues.
func TaskLabel() string {
	ensure()
	return v.GetString("labels.task")
}

// ExternalLabelLadder returns the ordered label filters tried in sequence
// during external reconciliation. An empty string entry means unfiltered.
func ExternalLabelLadder() []string {
	ensure()
	return v.GetStringSlice("labels.external-ladder")
}
