// FILE: logrelay/src/internal/format/format.go
package format

import (
	"fmt"

	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter renders an outbound message for line-oriented outputs
type Formatter interface {
	// Format returns the message as a newline-terminated byte slice
	Format(msg core.OutboundMessage) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a Formatter by name. label prefixes text output with the source name.
func New(name string, label bool, logger *log.Logger) (Formatter, error) {
	if name == "" {
		name = "text"
	}

	switch name {
	case "text":
		return NewTextFormatter(label, logger), nil
	case "json":
		return NewJSONFormatter(logger), nil
	case "raw":
		return NewRawFormatter(logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

// Outputs the message exactly as it would be sent to a chat
type TextFormatter struct {
	label  bool
	logger *log.Logger
}

func NewTextFormatter(label bool, logger *log.Logger) *TextFormatter {
	return &TextFormatter{
		label:  label,
		logger: logger,
	}
}

func (f *TextFormatter) Format(msg core.OutboundMessage) ([]byte, error) {
	return append([]byte(msg.Render(f.label)), '\n'), nil
}

func (f *TextFormatter) Name() string {
	return "text"
}
