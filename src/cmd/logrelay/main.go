// FILE: logrelay/src/cmd/logrelay/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/status"
	"logrelay/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Subcommands exit on their own
	NewCommandRouter().Route(os.Args)

	flagCfg, configArgs, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setQuiet(flagCfg.Quiet)

	if flagCfg.ShowHelp {
		Print("%s", helpText)
		os.Exit(0)
	}

	if flagCfg.ShowVersion {
		Print("%s\n", version.String())
		os.Exit(0)
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGRELAY_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.Load(configArgs)
	if err != nil {
		FatalError(1, "Failed to load config: %v\n", err)
	}
	if flagCfg.Quiet {
		cfg.Quiet = true
	}

	if err := initializeLogger(cfg); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}

	code := run(cfg)
	shutdownLogger()
	os.Exit(code)
}

// run drives the pipeline until it stops and returns the process exit code
func run(cfg *config.Config) int {
	logger.Info("msg", "logrelay starting",
		"version", version.String(),
		"config_file", cfg.ConfigFile,
		"source", cfg.Source.Type,
		"sink", cfg.Sink.Type,
		"log_output", cfg.Logging.Output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := NewSignalHandler(logger)
	defer signals.Stop()
	go func() {
		sig := signals.Handle(ctx)
		if sig == nil {
			return
		}
		logger.Info("msg", "Shutdown signal received, draining", "signal", sig.String())
		cancel()

		// A second signal aborts the drain
		if sig := signals.Handle(context.Background()); sig != nil {
			logger.Warn("msg", "Second signal received, forcing exit", "signal", sig.String())
			shutdownLogger()
			os.Exit(1)
		}
	}()

	supervisor, cleanup, err := bootstrapSupervisor(cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap pipeline", "error", err)
		return 1
	}
	defer cleanup()

	// Status outlives the interrupt so the drain stays observable
	statusCtx, statusCancel := context.WithCancel(context.Background())
	defer statusCancel()

	if cfg.Status.Enabled {
		srv := status.NewServer(cfg.Status, supervisor, logger)
		if err := srv.Start(statusCtx); err != nil {
			logger.Error("msg", "Failed to start status server", "error", err)
			return 1
		}
		defer srv.Stop()
	}

	if cfg.Status.ReportIntervalSeconds > 0 {
		go statusReporter(statusCtx, supervisor, time.Duration(cfg.Status.ReportIntervalSeconds)*time.Second)
	}

	if err := supervisor.Run(ctx); err != nil {
		logger.Error("msg", "Pipeline failed to start", "error", err)
		return 1
	}

	logger.Info("msg", "Shutdown complete")
	return 0
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
