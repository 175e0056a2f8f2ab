// FILE: logrelay/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// Environment variables of the original single-container deployment, mapped
// onto their config paths. Explicit LOGRELAY_ variables take precedence.
var legacyEnv = map[string]string{
	"BOT_TOKEN":      "sink.telegram.token",
	"CHAT_ID":        "sink.telegram.chat_id",
	"CONTAINER_NAME": "source.container",
	"LOGGER_NAME":    "filter.tag",
	"LOG_PATTERN":    "filter.pattern",
}

// Load builds the configuration from defaults, the config file, the
// environment and CLI arguments, then validates it.
func Load(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGRELAY_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	applyLegacyEnv(cfg)

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}
	finalConfig.ConfigFile = configPath

	if err := validateConfig(finalConfig); err != nil {
		return nil, err
	}
	return finalConfig, nil
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "LOGRELAY_" + env
	return env
}

func applyLegacyEnv(cfg *lconfig.Config) {
	for name, path := range legacyEnv {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		// Prefixed variable wins
		if os.Getenv(customEnvTransform(path)) != "" {
			continue
		}
		cfg.Set(path, value)
	}
}

// GetConfigPath resolves the config file location from the environment
func GetConfigPath() string {
	if configFile := os.Getenv("LOGRELAY_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGRELAY_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGRELAY_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logrelay.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logrelay.toml")
	}

	return "logrelay.toml"
}
