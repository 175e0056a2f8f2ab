// FILE: logrelay/src/internal/sink/errors.go
package sink

import (
	"fmt"
	"time"
)

// RateLimitError reports that the destination throttled the request
type RateLimitError struct {
	RetryAfter  time.Duration
	Description string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %s", e.RetryAfter, e.Description)
	}
	return fmt.Sprintf("rate limited: %s", e.Description)
}

// APIError reports a request rejected by the destination
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Description)
}

// TransportError reports a network failure or a server-side error status
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
