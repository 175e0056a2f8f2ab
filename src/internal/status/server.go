// FILE: logrelay/src/internal/status/server.go
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/middleware"
	"logrelay/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/valyala/fasthttp"
)

// Reporter exposes the pipeline snapshot served by the status endpoints.
// The snapshot carries the lifecycle phase under the "state" key.
type Reporter interface {
	GetStats() map[string]any
}

const stateStopped = "STOPPED"

// Server serves /health and /status over HTTP
type Server struct {
	host     string
	port     int64
	reporter Reporter
	logger   *log.Logger
	limiter  *middleware.RateLimiter

	server    *fasthttp.Server
	listener  net.Listener
	startTime time.Time
	stopOnce  sync.Once

	totalRequests atomic.Uint64
}

func NewServer(cfg config.StatusConfig, reporter Reporter, logger *log.Logger) *Server {
	s := &Server{
		host:     cfg.Host,
		port:     cfg.Port,
		reporter: reporter,
		logger:   logger,
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RequestsPerSecond, int(cfg.Burst), time.Minute, logger)
	}
	return s
}

// Start listens and serves in the background until ctx is done or Stop is called
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.host, strconv.FormatInt(s.port, 10))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.startTime = time.Now()

	handler := fasthttp.RequestHandler(s.requestHandler)
	if s.limiter != nil {
		handler = s.limiter.Handler(handler)
	}

	s.server = &fasthttp.Server{
		Name:               fmt.Sprintf("logrelay/%s", version.Short()),
		Handler:            handler,
		Logger:             compat.NewFastHTTPAdapter(s.logger),
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		CloseOnShutdown:    true,
		DisableKeepalive:   false,
		MaxRequestBodySize: 4 * 1024,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error("msg", "Status server failed",
				"component", "status_server",
				"error", err)
		}
	}()

	// Monitor context for shutdown signal
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("msg", "Status server started",
		"component", "status_server",
		"address", ln.Addr().String())
	return nil
}

// Addr returns the bound listen address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting briefly for in-flight requests
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	s.stopOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.server.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Warn("msg", "Status server shutdown incomplete",
				"component", "status_server",
				"error", err)
		}
	})
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	s.totalRequests.Add(1)
	ctx.SetContentType("application/json")

	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		json.NewEncoder(ctx).Encode(map[string]any{
			"error": "Method Not Allowed",
		})
		return
	}

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealth(ctx)
	case "/status":
		s.handleStatus(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		json.NewEncoder(ctx).Encode(map[string]any{
			"error": "Not Found",
			"path":  string(ctx.Path()),
		})
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	state, _ := s.reporter.GetStats()["state"].(string)

	health := "ok"
	if state == stateStopped {
		health = "stopped"
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	}

	data, _ := json.Marshal(map[string]any{
		"status": health,
		"state":  state,
	})
	ctx.SetBody(data)
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	server := map[string]any{
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"total_requests": s.totalRequests.Load(),
	}
	if s.limiter != nil {
		server["rate_limit"] = s.limiter.GetStats()
	}

	status := map[string]any{
		"service":  "logrelay",
		"version":  version.Info(),
		"server":   server,
		"pipeline": s.reporter.GetStats(),
	}

	data, _ := json.Marshal(status)
	ctx.SetBody(data)
}
