// FILE: logrelay/src/internal/format/raw.go
package format

import (
	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
)

// Outputs the extracted text as-is with a newline
type RawFormatter struct {
	logger *log.Logger
}

func NewRawFormatter(logger *log.Logger) *RawFormatter {
	return &RawFormatter{
		logger: logger,
	}
}

func (f *RawFormatter) Format(msg core.OutboundMessage) ([]byte, error) {
	return append([]byte(msg.Text), '\n'), nil
}

func (f *RawFormatter) Name() string {
	return "raw"
}
