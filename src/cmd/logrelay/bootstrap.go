// FILE: logrelay/src/cmd/logrelay/bootstrap.go
package main

import (
	"fmt"
	"strings"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/filter"
	"logrelay/src/internal/flow"
	"logrelay/src/internal/format"
	"logrelay/src/internal/service"
	"logrelay/src/internal/sink"
	"logrelay/src/internal/source"

	"github.com/lixenwraith/log"
)

// bootstrapSupervisor wires source, filter, sink and pacer into a supervisor.
// The returned cleanup releases the source.
func bootstrapSupervisor(cfg *config.Config) (*service.Supervisor, func(), error) {
	src, identifier, err := createSource(cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create source: %w", err)
	}
	cleanup := func() {
		if err := src.Close(); err != nil {
			logger.Warn("msg", "Failed to close source", "error", err)
		}
	}

	f, err := filter.New(cfg.Filter, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create filter: %w", err)
	}

	snk, err := createSink(cfg.Sink)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create sink: %w", err)
	}

	pacer, err := flow.New(cfg.Pacing, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create pacer: %w", err)
	}

	supervisor := service.NewSupervisor(src, f, snk, pacer, service.Options{
		Identifier:   identifier,
		Lookback:     time.Duration(cfg.Source.LookbackSeconds) * time.Second,
		QueueSize:    int(cfg.Pipeline.QueueSize),
		ShutdownMode: cfg.Shutdown.Mode,
		DrainTimeout: time.Duration(cfg.Shutdown.DrainTimeoutSeconds) * time.Second,
	}, logger)

	return supervisor, cleanup, nil
}

// createSource returns the configured source and the identifier to open
func createSource(cfg config.SourceConfig) (source.LogSource, string, error) {
	switch cfg.Type {
	case "docker":
		src, err := source.NewDockerSource(cfg.DockerHost, logger)
		if err != nil {
			return nil, "", err
		}
		return src, cfg.Container, nil
	case "stdin":
		return source.NewStdinSource(logger), "stdin", nil
	default:
		return nil, "", fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}

func createSink(cfg config.SinkConfig) (sink.NotificationSink, error) {
	switch cfg.Type {
	case "telegram":
		return sink.NewTelegramSink(cfg.Telegram, cfg.Label, logger)
	case "console":
		formatter, err := format.New(cfg.Console.Format, cfg.Label, logger)
		if err != nil {
			return nil, err
		}
		return sink.NewConsoleSink(formatter, logger), nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Type)
	}
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	configArgs, err := loggerArgs(cfg)
	if err != nil {
		return err
	}
	return logger.ApplyConfigString(configArgs...)
}

// loggerArgs translates the logging section into logger init parameters
func loggerArgs(cfg *config.Config) ([]string, error) {
	var configArgs []string

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		return append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255"), nil
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case config.LogOutputNone:
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case config.LogOutputStdout, config.LogOutputStderr:
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			fmt.Sprintf("stdout_target=%s", cfg.Logging.Output))

	case config.LogOutputSplit:
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_split_mode=true",
			"stdout_target=split")

	case config.LogOutputFile:
		configArgs = append(configArgs, "enable_stdout=false")
		configArgs = append(configArgs, fileLoggingArgs(cfg)...)

	case config.LogOutputAll:
		configArgs = append(configArgs, "enable_stdout=true")
		configArgs = append(configArgs, fileLoggingArgs(cfg)...)
		configArgs = append(configArgs, consoleTargetArgs(cfg)...)

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Console != nil && cfg.Logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Logging.Console.Format))
	}

	return configArgs, nil
}

func fileLoggingArgs(cfg *config.Config) []string {
	if cfg.Logging.File == nil {
		return nil
	}
	args := []string{
		fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
		fmt.Sprintf("name=%s", cfg.Logging.File.Name),
		fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", cfg.Logging.File.MaxTotalSizeMB),
	}
	if cfg.Logging.File.RetentionHours > 0 {
		args = append(args, fmt.Sprintf("retention_period_hrs=%.1f", cfg.Logging.File.RetentionHours))
	}
	return args
}

func consoleTargetArgs(cfg *config.Config) []string {
	target := "stderr"
	if cfg.Logging.Console != nil && cfg.Logging.Console.Target != "" {
		target = cfg.Logging.Console.Target
	}

	// Split mode routes by level: info/debug to stdout, warn/error to stderr
	if target == "split" {
		return []string{"stdout_split_mode=true", "stdout_target=split"}
	}
	return []string{fmt.Sprintf("stdout_target=%s", target)}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
