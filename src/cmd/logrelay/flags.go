// FILE: logrelay/src/cmd/logrelay/flags.go
package main

import (
	"fmt"
	"strings"
)

// FlagConfig holds the flags handled before configuration loading
type FlagConfig struct {
	ConfigFile  string
	Quiet       bool
	ShowVersion bool
	ShowHelp    bool
}

// ParseFlags extracts application control flags from args.
// Remaining arguments are returned untouched for the config loader,
// e.g. --source.container=web or --pacing.delay_ms=1000.
func ParseFlags(args []string) (*FlagConfig, []string, error) {
	cfg := &FlagConfig{}
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")

		switch name {
		case "-c", "--config":
			if !hasValue {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					return nil, nil, fmt.Errorf("%s requires a file path", name)
				}
				i++
				value = args[i]
			}
			if value == "" {
				return nil, nil, fmt.Errorf("%s requires a file path", name)
			}
			cfg.ConfigFile = value

		case "-q", "--quiet":
			cfg.Quiet = true
			// Forward so the config reflects it
			rest = append(rest, "--quiet=true")

		case "-v", "--version":
			cfg.ShowVersion = true

		case "-h", "--help":
			cfg.ShowHelp = true

		default:
			if !strings.HasPrefix(arg, "--") {
				return nil, nil, fmt.Errorf("unknown argument: %s", arg)
			}
			rest = append(rest, arg)
		}
	}

	return cfg, rest, nil
}
