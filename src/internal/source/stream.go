// FILE: logrelay/src/internal/source/stream.go
package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

const (
	readBufferSize = 64 * 1024

	// Records longer than this keep only their tail
	maxRecordSize = 1024 * 1024
)

// lineStream splits a byte stream into newline-terminated records.
// Reading happens on a dedicated goroutine so Next can honour cancellation
// while the underlying read is blocked.
type lineStream struct {
	rc        io.ReadCloser
	maxRecord int
	lines     chan []byte
	stop  chan struct{}
	done  chan struct{}
	err   error // valid once done is closed

	closeOnce sync.Once
}

func newLineStream(rc io.ReadCloser) *lineStream {
	return newLineStreamLimit(rc, maxRecordSize)
}

func newLineStreamLimit(rc io.ReadCloser, maxRecord int) *lineStream {
	s := &lineStream{
		rc:        rc,
		maxRecord: maxRecord,
		lines:     make(chan []byte),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *lineStream) readLoop() {
	defer close(s.done)

	reader := bufio.NewReaderSize(s.rc, readBufferSize)
	var record []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		record = appendTail(record, chunk, s.maxRecord)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if len(record) > 0 {
			select {
			case s.lines <- record:
			case <-s.stop:
				s.err = ErrStreamClosed
				return
			}
			record = nil
		}
		if err != nil {
			s.err = err
			return
		}
	}
}

// appendTail appends chunk to dst and drops leading bytes beyond limit
func appendTail(dst, chunk []byte, limit int) []byte {
	dst = append(dst, chunk...)
	if over := len(dst) - limit; limit > 0 && over > 0 {
		dst = append(dst[:0], dst[over:]...)
	}
	return dst
}

func (s *lineStream) Next(ctx context.Context) ([]byte, error) {
	select {
	case line := <-s.lines:
		return line, nil
	case <-s.done:
		select {
		case <-s.stop:
			return nil, ErrStreamClosed
		default:
		}
		if errors.Is(s.err, io.EOF) {
			return nil, io.EOF
		}
		return nil, s.err
	case <-s.stop:
		return nil, ErrStreamClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *lineStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.rc.Close()
	})
	return err
}
