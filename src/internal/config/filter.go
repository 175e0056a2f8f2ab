// FILE: logrelay/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"
)

// FilterConfig selects which lines are forwarded and which part of them is kept.
// Tag and Pattern are mutually exclusive; with neither set every line passes.
type FilterConfig struct {
	// Literal marker, text after its first occurrence is forwarded
	Tag string `toml:"tag"`

	// Regex marker, text from the start of its last match is forwarded
	Pattern string `toml:"pattern"`

	// Lines matching any of these regexes are dropped before extraction
	Exclude []string `toml:"exclude"`
}

func validateFilter(cfg *FilterConfig) error {
	if cfg.Tag != "" && cfg.Pattern != "" {
		return fmt.Errorf("filter: tag and pattern are mutually exclusive")
	}

	if cfg.Pattern != "" {
		if _, err := regexp.Compile(cfg.Pattern); err != nil {
			return fmt.Errorf("filter pattern '%s': invalid regex: %w", cfg.Pattern, err)
		}
	}

	for i, pattern := range cfg.Exclude {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter exclude[%d] '%s': invalid regex: %w", i, pattern, err)
		}
	}

	return nil
}
