// FILE: logrelay/src/cmd/logrelay/output_test.go
package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleOutput(t *testing.T) {
	saved := out
	t.Cleanup(func() { out = saved })

	var stdout, stderr bytes.Buffer
	out = &console{stdout: &stdout, stderr: &stderr}

	t.Run("Streams", func(t *testing.T) {
		Print("hello %s\n", "relay")
		Error("bad %d\n", 7)
		assert.Equal(t, "hello relay\n", stdout.String())
		assert.Equal(t, "bad 7\n", stderr.String())
	})

	t.Run("QuietMutes", func(t *testing.T) {
		stdout.Reset()
		stderr.Reset()
		setQuiet(true)
		Print("hidden\n")
		Error("hidden\n")
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})
}
