// FILE: logrelay/src/cmd/logrelay/signal.go
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lixenwraith/log"
)

// Manages termination signals
type SignalHandler struct {
	logger   *log.Logger
	sigChan  chan os.Signal
	stopOnce sync.Once
}

func NewSignalHandler(logger *log.Logger) *SignalHandler {
	sh := &SignalHandler{
		logger:  logger,
		sigChan: make(chan os.Signal, 2),
	}

	signal.Notify(sh.sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sh
}

// Blocks until a termination signal arrives, returns nil when ctx is done or the handler stopped
func (sh *SignalHandler) Handle(ctx context.Context) os.Signal {
	select {
	case sig, ok := <-sh.sigChan:
		if !ok {
			return nil
		}
		sh.logger.Debug("msg", "Signal received", "signal", sig.String())
		return sig
	case <-ctx.Done():
		return nil
	}
}

func (sh *SignalHandler) Stop() {
	sh.stopOnce.Do(func() {
		signal.Stop(sh.sigChan)
		close(sh.sigChan)
	})
}
