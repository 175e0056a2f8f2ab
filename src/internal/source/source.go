// FILE: logrelay/src/internal/source/source.go
package source

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is wrapped by Open when the requested log origin does not exist
var ErrNotFound = errors.New("log source not found")

// ErrStreamClosed is returned by Next after the stream was closed
var ErrStreamClosed = errors.New("stream closed")

// LogSource opens live log streams by identifier
type LogSource interface {
	// Opens a stream of records produced at or after since
	Open(ctx context.Context, identifier string, since time.Time) (Stream, error)

	// Releases resources held by the source
	Close() error
}

// Stream yields raw log records in the order they were produced
type Stream interface {
	// Returns the next record, io.EOF at the end of the stream
	Next(ctx context.Context) ([]byte, error)

	// Stops the stream and its reader
	Close() error
}
