// FILE: logrelay/src/internal/sink/sink.go
package sink

import (
	"context"

	"logrelay/src/internal/core"
)

// NotificationSink delivers messages to a single destination.
// The destination is part of the sink's configuration.
type NotificationSink interface {
	// Open establishes the session and validates credentials
	Open(ctx context.Context) error

	// Send delivers one message, failures are returned and never retried
	Send(ctx context.Context, msg core.OutboundMessage) error

	// Close releases the session
	Close() error

	// Name identifies the sink in logs
	Name() string
}
