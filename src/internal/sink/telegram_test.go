// FILE: logrelay/src/internal/sink/telegram_test.go
package sink

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

type fakeBotAPI struct {
	mu       sync.Mutex
	paths    []string
	bodies   []sendMessageRequest
	status   int
	response string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/getMe") {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true,"result":{"id":42,"is_bot":true,"username":"relay_bot"}}`)
		return
	}

	var req sendMessageRequest
	json.NewDecoder(r.Body).Decode(&req)
	f.bodies = append(f.bodies, req)

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, f.response)
}

func (f *fakeBotAPI) sent() ([]string, []sendMessageRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...), append([]sendMessageRequest(nil), f.bodies...)
}

func newTestSink(t *testing.T, api http.Handler, label bool) *TelegramSink {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	s, err := NewTelegramSink(config.TelegramSinkOptions{
		Token:          "123:abc",
		ChatID:         "-100200",
		APIURL:         server.URL + "/",
		TimeoutSeconds: 2,
	}, label, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewTelegramSink(t *testing.T) {
	logger := newTestLogger()

	_, err := NewTelegramSink(config.TelegramSinkOptions{ChatID: "1"}, false, logger)
	assert.Error(t, err)

	_, err = NewTelegramSink(config.TelegramSinkOptions{Token: "t"}, false, logger)
	assert.Error(t, err)

	s, err := NewTelegramSink(config.TelegramSinkOptions{Token: "t", ChatID: "1"}, false, logger)
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bott", s.baseURL)
	assert.Equal(t, "telegram", s.Name())
}

func TestTelegramSink_Open(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := &fakeBotAPI{}
		s := newTestSink(t, api, false)

		require.NoError(t, s.Open(context.Background()))
		paths, _ := api.sent()
		assert.Equal(t, []string{"/bot123:abc/getMe"}, paths)
		assert.Equal(t, "relay_bot", s.GetStats()["bot"])
	})

	t.Run("Unauthorized", func(t *testing.T) {
		api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
		})
		s := newTestSink(t, api, false)

		err := s.Open(context.Background())
		require.Error(t, err)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 401, apiErr.Code)
		assert.Equal(t, "Unauthorized", apiErr.Description)
	})

	t.Run("Unreachable", func(t *testing.T) {
		s, err := NewTelegramSink(config.TelegramSinkOptions{
			Token:          "t",
			ChatID:         "1",
			APIURL:         "http://127.0.0.1:1",
			TimeoutSeconds: 1,
		}, false, newTestLogger())
		require.NoError(t, err)

		err = s.Open(context.Background())
		var transportErr *TransportError
		assert.True(t, errors.As(err, &transportErr))
	})
}

func TestTelegramSink_Send(t *testing.T) {
	msg := core.OutboundMessage{Time: time.Now(), Source: "bot", Text: "disk full"}

	t.Run("Success", func(t *testing.T) {
		api := &fakeBotAPI{response: `{"ok":true,"result":{"message_id":1}}`}
		s := newTestSink(t, api, false)

		require.NoError(t, s.Send(context.Background(), msg))
		paths, bodies := api.sent()
		require.Len(t, bodies, 1)
		assert.Equal(t, "-100200", bodies[0].ChatID)
		assert.Equal(t, "disk full", bodies[0].Text)
		assert.Equal(t, "/bot123:abc/sendMessage", paths[0])
		assert.Equal(t, uint64(1), s.GetStats()["total_sent"])
	})

	t.Run("WithLabel", func(t *testing.T) {
		api := &fakeBotAPI{response: `{"ok":true,"result":{}}`}
		s := newTestSink(t, api, true)

		require.NoError(t, s.Send(context.Background(), msg))
		_, bodies := api.sent()
		require.Len(t, bodies, 1)
		assert.Equal(t, "[bot] disk full", bodies[0].Text)
	})

	t.Run("RateLimited", func(t *testing.T) {
		api := &fakeBotAPI{
			status:   http.StatusTooManyRequests,
			response: `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 7","parameters":{"retry_after":7}}`,
		}
		s := newTestSink(t, api, false)

		err := s.Send(context.Background(), msg)
		var rl *RateLimitError
		require.True(t, errors.As(err, &rl))
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
		assert.Equal(t, uint64(1), s.GetStats()["total_failed"])
	})

	t.Run("APIError", func(t *testing.T) {
		api := &fakeBotAPI{
			status:   http.StatusBadRequest,
			response: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
		}
		s := newTestSink(t, api, false)

		err := s.Send(context.Background(), msg)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.Code)
		assert.Contains(t, apiErr.Description, "chat not found")
	})

	t.Run("ServerError", func(t *testing.T) {
		api := &fakeBotAPI{status: http.StatusBadGateway, response: "bad gateway"}
		s := newTestSink(t, api, false)

		err := s.Send(context.Background(), msg)
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "sendMessage", transportErr.Op)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		api := &fakeBotAPI{response: `{"ok":true}`}
		s := newTestSink(t, api, false)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, msg), context.Canceled)
		_, bodies := api.sent()
		assert.Empty(t, bodies)
	})
}
