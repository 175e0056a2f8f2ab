// FILE: logrelay/src/internal/config/logging.go
package config

// Diagnostic log destinations. Relayed messages never go through the logger.
const (
	LogOutputNone   = "none"
	LogOutputStdout = "stdout"
	LogOutputStderr = "stderr"
	LogOutputSplit  = "split" // debug/info on stdout, warn/error on stderr
	LogOutputFile   = "file"
	LogOutputAll    = "all" // file plus console.target
)

var (
	logOutputs = map[string]bool{
		LogOutputNone: true, LogOutputStdout: true, LogOutputStderr: true,
		LogOutputSplit: true, LogOutputFile: true, LogOutputAll: true,
	}
	logLevels      = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	consoleTargets = map[string]bool{LogOutputStdout: true, LogOutputStderr: true, LogOutputSplit: true}
	logFormats     = map[string]bool{"": true, "txt": true, "json": true}
)

// LogConfig is the [logging] section for logrelay's own diagnostics
type LogConfig struct {
	Output string `toml:"output"`
	Level  string `toml:"level"`

	// Used by "file" and "all"
	File *LogFileConfig `toml:"file"`

	// Used by "all" to pick the console stream, and for the line format
	Console *LogConsoleConfig `toml:"console"`
}

// LogFileConfig sets rotation for file output
type LogFileConfig struct {
	Directory      string  `toml:"directory"`
	Name           string  `toml:"name"`
	MaxSizeMB      int64   `toml:"max_size_mb"`
	MaxTotalSizeMB int64   `toml:"max_total_size_mb"`
	RetentionHours float64 `toml:"retention_hours"` // 0 keeps files until the size cap
}

type LogConsoleConfig struct {
	Target string `toml:"target"`
	Format string `toml:"format"`
}

// DefaultLogConfig logs info and above to stderr, keeping stdout for the console sink
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: LogOutputStderr,
		Level:  "info",
		File: &LogFileConfig{
			Directory:      "./log",
			Name:           "logrelay",
			MaxSizeMB:      100,
			MaxTotalSizeMB: 1000,
			RetentionHours: 168,
		},
		Console: &LogConsoleConfig{
			Target: LogOutputStderr,
			Format: "txt",
		},
	}
}
