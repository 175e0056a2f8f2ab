// FILE: logrelay/src/internal/core/const.go
package core

import "time"

// Hard limit of a single chat message, counted in characters
const MaxMessageLength = 4096

// Pipeline defaults
const (
	DefaultQueueSize      = 1000
	DefaultDeliveryDelay  = 500 * time.Millisecond
	DefaultDrainTimeout   = 30 * time.Second
	DefaultReportInterval = 30 * time.Second
)
