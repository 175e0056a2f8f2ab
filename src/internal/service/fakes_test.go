// FILE: logrelay/src/internal/service/fakes_test.go
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"logrelay/src/internal/core"
	"logrelay/src/internal/source"

	"github.com/lixenwraith/log"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

// fakeSource serves a fixed list of lines, then ends or blocks
type fakeSource struct {
	lines   []string
	eof     bool
	openErr error

	mu     sync.Mutex
	opened int
	since  time.Time
}

func (f *fakeSource) Open(ctx context.Context, identifier string, since time.Time) (source.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened++
	f.since = since
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeStream{lines: f.lines, eof: f.eof, closed: make(chan struct{})}, nil
}

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened
}

type fakeStream struct {
	lines     []string
	idx       int
	eof       bool
	closed    chan struct{}
	closeOnce sync.Once
}

func (s *fakeStream) Next(ctx context.Context) ([]byte, error) {
	if s.idx < len(s.lines) {
		line := s.lines[s.idx]
		s.idx++
		return []byte(line + "\n"), nil
	}
	if s.eof {
		return nil, io.EOF
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closed:
		return nil, source.ErrStreamClosed
	}
}

func (s *fakeStream) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

// recordingSink records every message it is asked to send
type recordingSink struct {
	openErr error
	sendErr error
	delay   time.Duration
	gate    chan struct{} // when set, Send blocks until it is closed or ctx is done
	panics  bool

	mu       sync.Mutex
	sent     []string
	attempts int
	opened   bool
	closed   bool
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
	return s.openErr
}

func (s *recordingSink) Send(ctx context.Context, msg core.OutboundMessage) error {
	s.mu.Lock()
	s.attempts++
	s.mu.Unlock()

	if s.panics {
		panic("sink exploded")
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.sendErr != nil {
		return s.sendErr
	}

	s.mu.Lock()
	s.sent = append(s.sent, msg.Text)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *recordingSink) attemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *recordingSink) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// recordingPacer never waits and records backoff requests
type recordingPacer struct {
	mu       sync.Mutex
	backoffs []time.Duration
}

func (p *recordingPacer) Wait(ctx context.Context) error { return ctx.Err() }

func (p *recordingPacer) Backoff(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backoffs = append(p.backoffs, d)
}

func (p *recordingPacer) recorded() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.backoffs...)
}
