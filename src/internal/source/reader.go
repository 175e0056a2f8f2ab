// FILE: logrelay/src/internal/source/reader.go
package source

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/log"
)

// ReaderSource serves a single stream over an io.Reader, stdin by default.
// The since cursor does not apply, records are whatever the reader yields.
type ReaderSource struct {
	reader io.Reader
	logger *log.Logger

	mu     sync.Mutex
	opened bool
}

// NewStdinSource creates a ReaderSource over standard input
func NewStdinSource(logger *log.Logger) *ReaderSource {
	return NewReaderSource(os.Stdin, logger)
}

func NewReaderSource(r io.Reader, logger *log.Logger) *ReaderSource {
	return &ReaderSource{
		reader: r,
		logger: logger,
	}
}

// Open returns a stream over the reader. A reader can only be consumed once.
func (s *ReaderSource) Open(ctx context.Context, identifier string, since time.Time) (Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return nil, ErrStreamClosed
	}
	s.opened = true

	rc, ok := s.reader.(io.ReadCloser)
	if !ok || s.reader == os.Stdin {
		rc = io.NopCloser(s.reader)
	}

	s.logger.Info("msg", "Reader source opened",
		"component", "reader_source",
		"identifier", identifier)

	return newLineStream(rc), nil
}

func (s *ReaderSource) Close() error {
	return nil
}
