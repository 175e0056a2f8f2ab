// FILE: logrelay/src/internal/core/entry_test.go
package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTailChars(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{name: "ShorterThanLimit", input: "abc", n: 5, expected: "abc"},
		{name: "ExactLimit", input: "abcde", n: 5, expected: "abcde"},
		{name: "KeepsTail", input: "abcdef", n: 3, expected: "def"},
		{name: "MultiByte", input: "ääääb", n: 2, expected: "äb"},
		{name: "ZeroLimit", input: "abc", n: 0, expected: ""},
		{name: "Empty", input: "", n: 3, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TailChars(tc.input, tc.n))
		})
	}
}

func TestOutboundMessage_Render(t *testing.T) {
	t.Run("WithoutLabel", func(t *testing.T) {
		msg := OutboundMessage{Source: "web", Text: "boot ok"}
		assert.Equal(t, "boot ok", msg.Render(false))
	})

	t.Run("WithLabel", func(t *testing.T) {
		msg := OutboundMessage{Source: "web", Text: "boot ok"}
		assert.Equal(t, "[web] boot ok", msg.Render(true))
	})

	t.Run("EmptySourceSkipsLabel", func(t *testing.T) {
		msg := OutboundMessage{Text: "boot ok"}
		assert.Equal(t, "boot ok", msg.Render(true))
	})

	t.Run("LabelKeepsWithinLimit", func(t *testing.T) {
		text := strings.Repeat("x", MaxMessageLength-1) + "Z"
		msg := OutboundMessage{Source: "web", Text: text}

		out := msg.Render(true)
		assert.Equal(t, MaxMessageLength, utf8.RuneCountInString(out))
		assert.True(t, strings.HasPrefix(out, "[web] "))
		assert.True(t, strings.HasSuffix(out, "Z"))
	})
}
