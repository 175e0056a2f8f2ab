// FILE: logrelay/src/internal/config/validation.go
package config

import (
	"fmt"
	"net/url"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Logging == nil {
		cfg.Logging = DefaultLogConfig()
	}
	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := validateSource(&cfg.Source); err != nil {
		return err
	}
	if err := validateFilter(&cfg.Filter); err != nil {
		return err
	}
	if err := validateSink(&cfg.Sink); err != nil {
		return err
	}
	if err := validatePacing(&cfg.Pacing); err != nil {
		return err
	}

	if cfg.Pipeline.QueueSize < 1 {
		return fmt.Errorf("pipeline: queue_size must be at least 1: %d", cfg.Pipeline.QueueSize)
	}

	switch cfg.Shutdown.Mode {
	case ShutdownDrain, ShutdownCancel:
	default:
		return fmt.Errorf("shutdown: invalid mode '%s' (must be 'drain' or 'cancel')", cfg.Shutdown.Mode)
	}
	if cfg.Shutdown.DrainTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown: drain_timeout_seconds cannot be negative")
	}

	if err := validateStatus(&cfg.Status); err != nil {
		return err
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if !logOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}
	if !logLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Console != nil {
		if !consoleTargets[cfg.Console.Target] {
			return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
		}
		if !logFormats[cfg.Console.Format] {
			return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
		}
	}

	return nil
}

func validateSource(cfg *SourceConfig) error {
	switch cfg.Type {
	case "docker":
		if err := lconfig.NonEmpty(cfg.Container); err != nil {
			return fmt.Errorf("source: docker source requires a container name")
		}
	case "stdin":
	default:
		return fmt.Errorf("source: unknown type '%s'", cfg.Type)
	}

	if cfg.LookbackSeconds < 0 {
		return fmt.Errorf("source: lookback_seconds cannot be negative")
	}
	return nil
}

func validateSink(cfg *SinkConfig) error {
	switch cfg.Type {
	case "telegram":
		tg := &cfg.Telegram
		if err := lconfig.NonEmpty(tg.Token); err != nil {
			return fmt.Errorf("sink: telegram sink requires a bot token")
		}
		if err := lconfig.NonEmpty(tg.ChatID); err != nil {
			return fmt.Errorf("sink: telegram sink requires a chat_id")
		}
		u, err := url.Parse(tg.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sink: invalid telegram api_url '%s'", tg.APIURL)
		}
		if tg.TimeoutSeconds < 1 {
			return fmt.Errorf("sink: telegram timeout_seconds must be at least 1")
		}
	case "console":
		switch cfg.Console.Format {
		case "", "text", "json", "raw":
		default:
			return fmt.Errorf("sink: invalid console format '%s'", cfg.Console.Format)
		}
	default:
		return fmt.Errorf("sink: unknown type '%s'", cfg.Type)
	}
	return nil
}

func validateStatus(cfg *StatusConfig) error {
	if cfg.ReportIntervalSeconds < 0 {
		return fmt.Errorf("status: report_interval_seconds cannot be negative")
	}
	if !cfg.Enabled {
		return nil
	}
	if err := lconfig.NonEmpty(cfg.Host); err != nil {
		return fmt.Errorf("status: host is required when enabled")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("status: invalid port %d", cfg.Port)
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("status: requests_per_second cannot be negative")
	}
	if cfg.RequestsPerSecond > 0 && cfg.Burst < 1 {
		return fmt.Errorf("status: burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}
