// Package httpclient is the single request pipeline to the real-estate API.
// It attaches the bearer token, bounds every call with a timeout, maps
// failures onto the domain error taxonomy and broadcasts 401 responses.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/metrics"
)

const (
	// DefaultTimeout bounds every request when Config.Timeout is unset.
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is read for its message.
	maxErrorBody = 64 << 10

	HeaderRequestID = "X-Request-ID"
)

// UnauthorizedHandler reacts to a 401. It runs before the error reaches
// the caller and cannot suppress it.
type UnauthorizedHandler func(ctx context.Context, err *domain.AuthError)

// Config holds the fixed request settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Request describes one call. Endpoint is the metric label; it defaults to Path.
type Request struct {
	Method   string
	Path     string
	Endpoint string
	Query    url.Values
	Body     any
}

// Client dispatches requests to the API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     ports.TokenSource
	log        zerolog.Logger

	mu           sync.RWMutex
	unauthorized []UnauthorizedHandler
}

// New builds a Client. httpClient may be nil.
func New(cfg Config, tokens ports.TokenSource, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}
}

// OnUnauthorized subscribes h to 401 responses from any endpoint.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = append(c.unauthorized, h)
}

// Do sends req and decodes a 2xx JSON body into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(req.Method, endpoint).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}
	requestID := httpReq.Header.Get(HeaderRequestID)
	log := c.log.With().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Logger()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Method, endpoint, "network_error").Inc()
		netErr := &domain.NetworkError{
			Method:  req.Method,
			Path:    req.Path,
			Timeout: isTimeout(ctx, err),
			Err:     err,
		}
		log.Warn().Err(err).Bool("timeout", netErr.Timeout).Dur("duration", time.Since(start)).Msg("api request failed")
		return netErr
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(req.Method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("api request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.decode(resp, req, out)
	}

	msg := serverMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		authErr := &domain.AuthError{Path: req.Path, Message: msg}
		log.Warn().Msg("api rejected credentials, tearing session down")
		c.notifyUnauthorized(ctx, authErr)
		return authErr
	case http.StatusNotFound:
		return &domain.NotFoundError{Path: req.Path, Message: msg}
	default:
		if msg == "" {
			msg = domain.GenericFailureMessage
		}
		log.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("api returned an error")
		return &domain.ServerError{Status: resp.StatusCode, Message: msg}
	}
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.Method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	// Read at dispatch time so a login or logout between calls is honoured.
	if token, ok := c.tokens.Token(ctx); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

func (c *Client) decode(resp *http.Response, req Request, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Method: req.Method, Path: req.Path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("invalid response from %s: %v", req.Path, err)}
	}
	return nil
}

func (c *Client) notifyUnauthorized(ctx context.Context, err *domain.AuthError) {
	c.mu.RLock()
	handlers := make([]UnauthorizedHandler, len(c.unauthorized))
	copy(handlers, c.unauthorized)
	c.mu.RUnlock()

	// The request context may already be past its deadline; teardown must still run.
	hctx := context.WithoutCancel(ctx)
	for _, h := range handlers {
		h(hctx, err)
	}
}

// serverMessage extracts "message" (then "error") from a JSON error body.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
