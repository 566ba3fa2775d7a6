package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pakolabs/business-console/internal/app/config"
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"go.uber.org/zap"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer"

	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"

	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

// TokenSource supplies the current bearer token; empty means unauthenticated.
type TokenSource interface {
	Token() string
}

// ExpiryNotifier receives the session expiry side channel. The notifier is
// called at most once per debounce window; the triggering request still gets
// its own error result.
type ExpiryNotifier interface {
	SessionExpired(statusCode int)
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Client is the single configured HTTP client of the console. It injects the
// bearer token on every request except login/registration and raises a
// debounced session expiry signal on 401/403 responses.
type Client struct {
	client   *http.Client
	baseURL  string
	tokens   TokenSource
	notifier ExpiryNotifier

	mu         sync.Mutex
	debounce   time.Duration
	lastSignal time.Time
}

func New(config config.Config, tokens TokenSource, notifier ExpiryNotifier) *Client {
	client := &http.Client{
		Timeout: config.RequestTimeout,
	}

	return &Client{
		client:   client,
		baseURL:  strings.TrimRight(config.APIBaseURL, "/"),
		tokens:   tokens,
		notifier: notifier,
		debounce: config.ExpiryDebounce,
	}
}

// Do performs one request against the business API. A non-2xx response is
// returned as *entity.HTTPError together with the decoded response; network
// absence and timeouts come back as wrapped transport errors.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) (Response, error) {
	req, err := c.buildRequest(ctx, method, path, body, query)
	if err != nil {
		return Response{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Response{}, fmt.Errorf("%s %s: %w", method, path, entity.ErrTimeout)
		}

		return Response{}, fmt.Errorf("cannot reach server for %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("error while reading response body: %w", err)
	}

	response := Response{
		StatusCode: res.StatusCode,
		Body:       data,
	}

	if res.StatusCode >= http.StatusBadRequest {
		httpErr := decodeHTTPError(res.StatusCode, data)

		if (res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden) && !isAuthPath(path) {
			c.maybeSignalExpiry(res.StatusCode)
		}

		zap.L().Debug(
			"request rejected by server",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
		)

		return response, httpErr
	}

	return response, nil
}

// ResetExpiryDebounce re-arms the expiry signal. Called after a successful
// login so a later 401 raises a fresh signal.
func (c *Client) ResetExpiryDebounce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSignal = time.Time{}
}

func (c *Client) buildRequest(ctx context.Context, method, path string, body any, query url.Values) (*http.Request, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error while marshalling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("cannot create request for %s %s: %w", method, path, err)
	}

	req.Header.Set(contentTypeHeader, contentTypeJSON)

	// Login and registration must never carry a stale token.
	if !isAuthPath(path) {
		token := c.tokens.Token()
		if len(token) > 0 {
			req.Header.Set(authHeader, fmt.Sprintf("%s %s", bearerPrefix, token))
		} else {
			zap.L().Warn("no token found for request", zap.String("method", method), zap.String("path", path))
		}
	}

	return req, nil
}

func (c *Client) maybeSignalExpiry(statusCode int) {
	if c.notifier == nil {
		return
	}

	c.mu.Lock()
	now := time.Now()
	if !c.lastSignal.IsZero() && now.Sub(c.lastSignal) < c.debounce {
		c.mu.Unlock()
		return
	}
	c.lastSignal = now
	c.mu.Unlock()

	c.notifier.SessionExpired(statusCode)
}

func decodeHTTPError(statusCode int, data []byte) *entity.HTTPError {
	httpErr := &entity.HTTPError{Status: statusCode}

	var response model.ErrorResponse
	err := json.Unmarshal(data, &response)
	if err != nil {
		return httpErr
	}

	httpErr.ServerMessage = response.Message
	for _, item := range response.ValidationErrors {
		httpErr.ValidationErrors = append(httpErr.ValidationErrors, fmt.Sprintf("%s: %s", item.Field, item.Message))
	}

	return httpErr
}

func isAuthPath(path string) bool {
	return strings.Contains(path, loginPath) || strings.Contains(path, registerPath)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
