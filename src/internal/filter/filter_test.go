// FILE: logrelay/src/internal/filter/filter_test.go
package filter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"logrelay/src/internal/config"
	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNew(t *testing.T) {
	logger := newTestLogger()

	t.Run("NoFilterByDefault", func(t *testing.T) {
		f, err := New(config.FilterConfig{}, logger)
		require.NoError(t, err)
		assert.Equal(t, NoFilter, f.Mode())
	})

	t.Run("TagMode", func(t *testing.T) {
		f, err := New(config.FilterConfig{Tag: "APP"}, logger)
		require.NoError(t, err)
		assert.Equal(t, TagFilter, f.Mode())
	})

	t.Run("PatternMode", func(t *testing.T) {
		f, err := New(config.FilterConfig{Pattern: "ERROR|WARN"}, logger)
		require.NoError(t, err)
		assert.Equal(t, PatternFilter, f.Mode())
	})

	t.Run("ErrorBothSet", func(t *testing.T) {
		f, err := New(config.FilterConfig{Tag: "APP", Pattern: "x"}, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
	})

	t.Run("ErrorInvalidRegex", func(t *testing.T) {
		f, err := New(config.FilterConfig{Pattern: "["}, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})

	t.Run("ErrorInvalidExclude", func(t *testing.T) {
		_, err := New(config.FilterConfig{Exclude: []string{"("}}, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exclude pattern[0]")
	})
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name     string
		cfg      config.FilterConfig
		raw      string
		expected string
		accepted bool
	}{
		{"NoFilterPassThrough", config.FilterConfig{}, "hello world\n", "hello world", true},
		{"NoFilterTrimsTrailing", config.FilterConfig{}, "hello \r\n\t", "hello", true},
		{"NoFilterKeepsLeading", config.FilterConfig{}, "  indented", "  indented", true},
		{"EmptySuppressed", config.FilterConfig{}, "\n", "", false},
		{"WhitespaceSuppressed", config.FilterConfig{}, "   \t\n", "", false},

		{"TagExtracts", config.FilterConfig{Tag: "APP"}, "2024 APP - boot ok", "boot ok", true},
		{"TagColon", config.FilterConfig{Tag: "bot"}, "INFO bot: started", "started", true},
		{"TagFirstOccurrence", config.FilterConfig{Tag: "APP"}, "x APP one APP two", "one APP two", true},
		{"TagAbsent", config.FilterConfig{Tag: "APP"}, "2024 other - boot ok", "", false},
		{"TagAtEnd", config.FilterConfig{Tag: "APP"}, "message APP -", "", false},
		{"TagCaseSensitive", config.FilterConfig{Tag: "APP"}, "app - boot", "", false},

		{"PatternLastMatch", config.FilterConfig{Pattern: "ERROR|WARN"}, "WARN low disk ERROR disk full", "ERROR disk full", true},
		{"PatternSingleMatch", config.FilterConfig{Pattern: `\[main\]`}, "ts [main] ready", "[main] ready", true},
		{"PatternNoMatch", config.FilterConfig{Pattern: "ERROR"}, "INFO all good", "", false},

		{"ExcludeWins", config.FilterConfig{Exclude: []string{"healthcheck"}}, "GET /healthcheck 200", "", false},
		{"ExcludeBeforeTag", config.FilterConfig{Tag: "APP", Exclude: []string{"DEBUG"}}, "DEBUG APP - x", "", false},
		{"ExcludeMiss", config.FilterConfig{Tag: "APP", Exclude: []string{"DEBUG"}}, "INFO APP - x", "x", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := New(tc.cfg, logger)
			require.NoError(t, err)
			text, ok := f.Apply([]byte(tc.raw))
			assert.Equal(t, tc.accepted, ok)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestFilter_InvalidUTF8(t *testing.T) {
	f, err := New(config.FilterConfig{}, newTestLogger())
	require.NoError(t, err)

	text, ok := f.Apply([]byte("bad \xff\xfe byte\n"))
	require.True(t, ok)
	assert.True(t, utf8.ValidString(text))
	assert.Contains(t, text, "�")
	assert.True(t, strings.HasSuffix(text, " byte"))
}

func TestFilter_Truncation(t *testing.T) {
	f, err := New(config.FilterConfig{}, newTestLogger())
	require.NoError(t, err)

	line := strings.Repeat("a", 904) + strings.Repeat("b", 4096)
	text, ok := f.Apply([]byte(line))
	require.True(t, ok)
	assert.Equal(t, core.MaxMessageLength, utf8.RuneCountInString(text))
	assert.Equal(t, strings.Repeat("b", 4096), text)

	t.Run("CountsCharactersNotBytes", func(t *testing.T) {
		line := strings.Repeat("é", 5000)
		text, ok := f.Apply([]byte(line))
		require.True(t, ok)
		assert.Equal(t, core.MaxMessageLength, utf8.RuneCountInString(text))
	})
}

func TestFilter_Pure(t *testing.T) {
	f, err := New(config.FilterConfig{Pattern: "ERR"}, newTestLogger())
	require.NoError(t, err)

	raw := []byte("a ERR b ERR c")
	first, ok1 := f.Apply(raw)
	second, ok2 := f.Apply(raw)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, "a ERR b ERR c", string(raw))
}
