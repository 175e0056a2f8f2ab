// FILE: logrelay/src/internal/config/pacing.go
package config

import "fmt"

// Pacing policies
const (
	PacingNone   = "none"
	PacingFixed  = "fixed"
	PacingBucket = "token_bucket"
)

// PacingConfig controls the spacing of consecutive deliveries
type PacingConfig struct {
	// Policy: "none", "fixed", "token_bucket"
	Policy string `toml:"policy"`

	// Minimum spacing between consecutive sends, in milliseconds
	DelayMS int64 `toml:"delay_ms"`

	// Token bucket: sends per second and burst size
	Rate  float64 `toml:"rate"`
	Burst int64   `toml:"burst"`
}

func validatePacing(cfg *PacingConfig) error {
	switch cfg.Policy {
	case PacingNone:
	case PacingFixed:
		if cfg.DelayMS < 0 {
			return fmt.Errorf("pacing: delay_ms cannot be negative: %d", cfg.DelayMS)
		}
	case PacingBucket:
		if cfg.Rate <= 0 {
			return fmt.Errorf("pacing: rate must be positive for token_bucket: %f", cfg.Rate)
		}
		if cfg.Burst < 1 {
			return fmt.Errorf("pacing: burst must be at least 1: %d", cfg.Burst)
		}
	default:
		return fmt.Errorf("pacing: unknown policy '%s'", cfg.Policy)
	}
	return nil
}
