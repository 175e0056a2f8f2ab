// FILE: logrelay/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"logrelay/src/internal/config"
	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
)

// Mode is the extraction strategy selected once from configuration
type Mode int

const (
	// NoFilter forwards every non-empty line unchanged
	NoFilter Mode = iota
	// TagFilter forwards the text after the first occurrence of a literal tag
	TagFilter
	// PatternFilter forwards the text from the start of the last regex match
	PatternFilter
)

func (m Mode) String() string {
	switch m {
	case NoFilter:
		return "none"
	case TagFilter:
		return "tag"
	case PatternFilter:
		return "pattern"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Characters stripped after a tag, e.g. "APP - msg" or "APP: msg"
const tagSeparators = " -:"

// Filter decides whether a raw record is forwarded and what text it carries.
// It holds only compiled immutable state and is safe for concurrent use.
type Filter struct {
	mode    Mode
	tag     string
	pattern *regexp.Regexp
	exclude []*regexp.Regexp
}

// New resolves a filter configuration into a Filter
func New(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	if cfg.Tag != "" && cfg.Pattern != "" {
		return nil, fmt.Errorf("tag and pattern are mutually exclusive")
	}

	f := &Filter{
		mode:    NoFilter,
		exclude: make([]*regexp.Regexp, 0, len(cfg.Exclude)),
	}

	switch {
	case cfg.Tag != "":
		f.mode = TagFilter
		f.tag = cfg.Tag
	case cfg.Pattern != "":
		re, err := regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", cfg.Pattern, err)
		}
		f.mode = PatternFilter
		f.pattern = re
	}

	for i, pattern := range cfg.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern[%d] '%s': %w", i, pattern, err)
		}
		f.exclude = append(f.exclude, re)
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"mode", f.mode.String(),
		"exclude_count", len(f.exclude))

	return f, nil
}

// Mode returns the resolved extraction mode
func (f *Filter) Mode() Mode {
	return f.mode
}

// Apply decodes a raw record and returns the text to forward.
// The second return value is false when the record is suppressed.
func (f *Filter) Apply(raw []byte) (string, bool) {
	line := strings.ToValidUTF8(string(raw), "\uFFFD")
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	for _, re := range f.exclude {
		if re.MatchString(line) {
			return "", false
		}
	}

	var text string
	switch f.mode {
	case TagFilter:
		idx := strings.Index(line, f.tag)
		if idx < 0 {
			return "", false
		}
		text = strings.TrimLeft(line[idx+len(f.tag):], tagSeparators)

	case PatternFilter:
		matches := f.pattern.FindAllStringIndex(line, -1)
		if len(matches) == 0 {
			return "", false
		}
		text = line[matches[len(matches)-1][0]:]

	default:
		text = line
	}

	if text == "" {
		return "", false
	}

	return core.TailChars(text, core.MaxMessageLength), true
}
