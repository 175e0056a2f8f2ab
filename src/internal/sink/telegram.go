// FILE: logrelay/src/internal/sink/telegram.go
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/core"
	"logrelay/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// TelegramSink sends messages through the Telegram Bot API
type TelegramSink struct {
	config config.TelegramSinkOptions
	label  bool
	client *fasthttp.Client
	logger *log.Logger

	baseURL string
	botName atomic.Value // string

	// Statistics
	totalSent   atomic.Uint64
	totalFailed atomic.Uint64
}

type sendMessageRequest struct {
	ChatID              string `json:"chat_id"`
	Text                string `json:"text"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters,omitempty"`
}

type botUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewTelegramSink creates a sink posting to opts.ChatID. With label set every
// message is prefixed with its source name.
func NewTelegramSink(opts config.TelegramSinkOptions, label bool, logger *log.Logger) (*TelegramSink, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("telegram sink requires a bot token")
	}
	if opts.ChatID == "" {
		return nil, fmt.Errorf("telegram sink requires a chat id")
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = 10
	}
	apiURL := strings.TrimRight(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}

	timeout := time.Duration(opts.TimeoutSeconds) * time.Second
	t := &TelegramSink{
		config: opts,
		label:  label,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			MaxIdleConnDuration: 30 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		logger:  logger,
		baseURL: apiURL + "/bot" + opts.Token,
	}
	t.botName.Store("")
	return t, nil
}

func (t *TelegramSink) Name() string {
	return "telegram"
}

// Open validates the token with getMe
func (t *TelegramSink) Open(ctx context.Context) error {
	result, err := t.call(ctx, "getMe", nil)
	if err != nil {
		return fmt.Errorf("telegram getMe failed: %w", err)
	}

	var bot botUser
	if err := json.Unmarshal(result, &bot); err != nil {
		return fmt.Errorf("telegram getMe: invalid result: %w", err)
	}
	t.botName.Store(bot.Username)

	t.logger.Info("msg", "Telegram sink opened",
		"component", "telegram_sink",
		"bot", bot.Username,
		"chat_id", t.config.ChatID)
	return nil
}

// Send posts one message with sendMessage
func (t *TelegramSink) Send(ctx context.Context, msg core.OutboundMessage) error {
	req := sendMessageRequest{
		ChatID:              t.config.ChatID,
		Text:                msg.Render(t.label),
		DisableNotification: t.config.DisableNotification,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if _, err := t.call(ctx, "sendMessage", body); err != nil {
		t.totalFailed.Add(1)
		return err
	}
	t.totalSent.Add(1)
	return nil
}

func (t *TelegramSink) Close() error {
	t.client.CloseIdleConnections()
	t.logger.Info("msg", "Telegram sink closed",
		"component", "telegram_sink",
		"total_sent", t.totalSent.Load(),
		"total_failed", t.totalFailed.Load())
	return nil
}

// GetStats returns sink statistics
func (t *TelegramSink) GetStats() map[string]any {
	return map[string]any{
		"type":         "telegram",
		"bot":          t.botName.Load(),
		"total_sent":   t.totalSent.Load(),
		"total_failed": t.totalFailed.Load(),
	}
}

// call performs one Bot API method and returns its result on success
func (t *TelegramSink) call(ctx context.Context, method string, body []byte) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := time.Duration(t.config.TimeoutSeconds) * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	// Acquire resources per call, release immediately after use
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()

	req.SetRequestURI(t.baseURL + "/" + method)
	if body != nil {
		req.Header.SetMethod("POST")
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	} else {
		req.Header.SetMethod("GET")
	}
	req.Header.Set("User-Agent", fmt.Sprintf("logrelay/%s", version.Short()))

	err := t.client.DoTimeout(req, resp, timeout)

	// Capture response before releasing
	statusCode := resp.StatusCode()
	var respBody []byte
	if len(resp.Body()) > 0 {
		respBody = make([]byte, len(resp.Body()))
		copy(respBody, resp.Body())
	}

	fasthttp.ReleaseRequest(req)
	fasthttp.ReleaseResponse(resp)

	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}

	var parsed apiResponse
	decodeErr := json.Unmarshal(respBody, &parsed)

	if statusCode == http.StatusTooManyRequests || parsed.ErrorCode == http.StatusTooManyRequests {
		rl := &RateLimitError{Description: parsed.Description}
		if parsed.Parameters != nil && parsed.Parameters.RetryAfter > 0 {
			rl.RetryAfter = time.Duration(parsed.Parameters.RetryAfter) * time.Second
		}
		return nil, rl
	}

	if statusCode >= 500 {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("server returned status %d", statusCode)}
	}

	if decodeErr != nil {
		return nil, &TransportError{Op: method, Err: fmt.Errorf("invalid response (status %d): %w", statusCode, decodeErr)}
	}

	if !parsed.OK {
		code := parsed.ErrorCode
		if code == 0 {
			code = statusCode
		}
		return nil, &APIError{Code: code, Description: parsed.Description}
	}

	return parsed.Result, nil
}
