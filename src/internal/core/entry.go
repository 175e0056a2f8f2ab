// FILE: logrelay/src/internal/core/entry.go
package core

import (
	"time"
	"unicode/utf8"
)

// OutboundMessage is a filtered, length-bounded line waiting for delivery
type OutboundMessage struct {
	Time   time.Time `json:"time"`
	Source string    `json:"source"`
	Text   string    `json:"text"`
}

// Render returns the text sent to the sink. With a label the source name is
// prefixed as "[source] " and the head of Text is trimmed so the result stays
// within MaxMessageLength characters.
func (m OutboundMessage) Render(withLabel bool) string {
	if !withLabel || m.Source == "" {
		return TailChars(m.Text, MaxMessageLength)
	}

	prefix := "[" + m.Source + "] "
	room := MaxMessageLength - utf8.RuneCountInString(prefix)
	if room <= 0 {
		return TailChars(m.Text, MaxMessageLength)
	}
	return prefix + TailChars(m.Text, room)
}

// TailChars keeps the last n characters of s
func TailChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	// Fast path, byte length bounds rune count
	if len(s) <= n {
		return s
	}

	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}

	skip := count - n
	for i := range s {
		if skip == 0 {
			return s[i:]
		}
		skip--
	}
	return ""
}
