// FILE: logrelay/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces one JSON object per message
type JSONFormatter struct {
	logger *log.Logger
}

func NewJSONFormatter(logger *log.Logger) *JSONFormatter {
	return &JSONFormatter{
		logger: logger,
	}
}

// Format emits time, source and text. Text that is itself a JSON object is
// embedded under "fields" so structured logs stay queryable.
func (f *JSONFormatter) Format(msg core.OutboundMessage) ([]byte, error) {
	output := map[string]any{
		"time":   msg.Time.Format(time.RFC3339Nano),
		"source": msg.Source,
		"text":   msg.Text,
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(msg.Text), &fields); err == nil {
		output["fields"] = fields
	}

	result, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(result, '\n'), nil
}

func (f *JSONFormatter) Name() string {
	return "json"
}
