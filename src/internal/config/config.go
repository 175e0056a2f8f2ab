// FILE: logrelay/src/internal/config/config.go
package config

// Config is the complete runtime configuration of logrelay
type Config struct {
	// Top-level flags
	Quiet      bool   `toml:"quiet"`
	ConfigFile string `toml:"-"`

	Source   SourceConfig   `toml:"source"`
	Filter   FilterConfig   `toml:"filter"`
	Sink     SinkConfig     `toml:"sink"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Pacing   PacingConfig   `toml:"pacing"`
	Shutdown ShutdownConfig `toml:"shutdown"`
	Status   StatusConfig   `toml:"status"`
	Logging  *LogConfig     `toml:"logging"`
}

// SourceConfig selects where log lines are read from
type SourceConfig struct {
	// Source type: "docker" or "stdin"
	Type string `toml:"type"`

	// Container name or ID (docker)
	Container string `toml:"container"`

	// Docker daemon address, empty uses DOCKER_HOST or the default socket
	DockerHost string `toml:"docker_host"`

	// Replay window before "now" on connect, 0 starts from the current time
	LookbackSeconds int64 `toml:"lookback_seconds"`
}

// SinkConfig selects where accepted lines are delivered
type SinkConfig struct {
	// Sink type: "telegram" or "console"
	Type string `toml:"type"`

	// Prefix every message with "[source] "
	Label bool `toml:"label"`

	Telegram TelegramSinkOptions `toml:"telegram"`
	Console  ConsoleSinkOptions  `toml:"console"`
}

// ConsoleSinkOptions configures stdout delivery
type ConsoleSinkOptions struct {
	// Line format: "text", "json" or "raw"
	Format string `toml:"format"`
}

// TelegramSinkOptions configures the Telegram Bot API sink
type TelegramSinkOptions struct {
	Token               string `toml:"token"`
	ChatID              string `toml:"chat_id"`
	APIURL              string `toml:"api_url"`
	TimeoutSeconds      int64  `toml:"timeout_seconds"`
	DisableNotification bool   `toml:"disable_notification"`
}

// PipelineConfig sizes the queue between ingestion and delivery
type PipelineConfig struct {
	QueueSize int64 `toml:"queue_size"`
}

// ShutdownConfig controls what happens to queued lines on stop
type ShutdownConfig struct {
	// "drain" delivers everything already queued, "cancel" abandons it
	Mode string `toml:"mode"`

	// Upper bound for draining after a signal, 0 waits indefinitely.
	// End of the source stream always drains fully.
	DrainTimeoutSeconds int64 `toml:"drain_timeout_seconds"`
}

// StatusConfig controls the HTTP status endpoint and the periodic status log
type StatusConfig struct {
	Enabled               bool   `toml:"enabled"`
	Host                  string `toml:"host"`
	Port                  int64  `toml:"port"`
	ReportIntervalSeconds int64  `toml:"report_interval_seconds"`

	// Per-client request limit on the endpoints, 0 disables limiting
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int64   `toml:"burst"`
}

// Shutdown modes
const (
	ShutdownDrain  = "drain"
	ShutdownCancel = "cancel"
)

func defaults() *Config {
	return &Config{
		Source: SourceConfig{
			Type:            "docker",
			LookbackSeconds: 0,
		},
		Sink: SinkConfig{
			Type:  "telegram",
			Label: true,
			Telegram: TelegramSinkOptions{
				APIURL:         "https://api.telegram.org",
				TimeoutSeconds: 10,
			},
			Console: ConsoleSinkOptions{
				Format: "text",
			},
		},
		Pipeline: PipelineConfig{
			QueueSize: 1000,
		},
		Pacing: PacingConfig{
			Policy:  PacingFixed,
			DelayMS: 500,
			Rate:    1,
			Burst:   1,
		},
		Shutdown: ShutdownConfig{
			Mode:                ShutdownDrain,
			DrainTimeoutSeconds: 30,
		},
		Status: StatusConfig{
			Enabled:               false,
			Host:                  "127.0.0.1",
			Port:                  8080,
			ReportIntervalSeconds: 30,
			RequestsPerSecond:     5,
			Burst:                 10,
		},
		Logging: DefaultLogConfig(),
	}
}
