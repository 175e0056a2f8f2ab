// FILE: logrelay/src/internal/sink/console.go
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"logrelay/src/internal/core"
	"logrelay/src/internal/format"

	"github.com/lixenwraith/log"
)

// ConsoleSink writes formatted messages to a writer, stdout by default.
// Used for dry runs without a chat destination.
type ConsoleSink struct {
	output    io.Writer
	formatter format.Formatter
	logger    *log.Logger

	mu sync.Mutex

	// Statistics
	totalProcessed atomic.Uint64
}

func NewConsoleSink(formatter format.Formatter, logger *log.Logger) *ConsoleSink {
	return NewWriterSink(os.Stdout, formatter, logger)
}

func NewWriterSink(w io.Writer, formatter format.Formatter, logger *log.Logger) *ConsoleSink {
	return &ConsoleSink{
		output:    w,
		formatter: formatter,
		logger:    logger,
	}
}

func (s *ConsoleSink) Name() string {
	return "console"
}

func (s *ConsoleSink) Open(ctx context.Context) error {
	s.logger.Info("msg", "Console sink opened",
		"component", "console_sink",
		"format", s.formatter.Name())
	return nil
}

func (s *ConsoleSink) Send(ctx context.Context, msg core.OutboundMessage) error {
	data, err := s.formatter.Format(msg)
	if err != nil {
		return fmt.Errorf("failed to format message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.output.Write(data); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	s.totalProcessed.Add(1)
	return nil
}

func (s *ConsoleSink) Close() error {
	s.logger.Info("msg", "Console sink closed",
		"component", "console_sink",
		"total_processed", s.totalProcessed.Load())
	return nil
}

// GetStats returns sink statistics
func (s *ConsoleSink) GetStats() map[string]any {
	return map[string]any{
		"type":            "console",
		"total_processed": s.totalProcessed.Load(),
	}
}
