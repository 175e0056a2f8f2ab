// FILE: logrelay/src/cmd/logrelay/output.go
package main

import (
	"fmt"
	"io"
	"os"
)

// console carries user-facing text printed before the logger exists or after
// it is gone. Quiet mode mutes it entirely.
type console struct {
	quiet  bool
	stdout io.Writer
	stderr io.Writer
}

var out = &console{stdout: os.Stdout, stderr: os.Stderr}

func setQuiet(quiet bool) {
	out.quiet = quiet
}

func (c *console) printf(w io.Writer, format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

func Print(format string, args ...any) {
	out.printf(out.stdout, format, args...)
}

func Error(format string, args ...any) {
	out.printf(out.stderr, format, args...)
}

// FatalError reports on stderr and exits with code
func FatalError(code int, format string, args ...any) {
	Error(format, args...)
	os.Exit(code)
}
