// Package orderapi is the HTTP client for the order store API. Every
// request/response pair uses the {success, data|message} envelope; a
// success=false body at a 2xx status is treated exactly like a non-2xx
// status.
package orderapi

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
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnauthorized means the bearer token is missing or expired. Not
	// retryable; the operator has to sign in again.
	ErrUnauthorized = errors.New("authentication required")
	// ErrTimeout means the client-side request budget ran out. Retryable.
	ErrTimeout = errors.New("request timed out, please try again")
)

// DefaultTimeout is the per-request budget applied when Client.Timeout is
// unset. Each request gets its own deadline; one timing out does not cancel
// requests running next to it.
const DefaultTimeout = 4 * time.Second

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one order store instance with one bearer token.
type Client struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	HTTP    *http.Client
	Log     *logrus.Logger
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Timeout: DefaultTimeout,
		HTTP:    &http.Client{},
	}
}

func (c *Client) logger() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// do issues one request and unwraps the envelope, returning the raw data
// payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpc := c.HTTP
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger().WithFields(logrus.Fields{"method": method, "path": path}).Warn("request timed out")
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		msg := env.Message
		if msg == "" {
			msg = "missing or expired token"
		}
		return nil, fmt.Errorf("%s: %w", msg, ErrUnauthorized)
	}
	if decodeErr != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%s %s: server returned status %d", method, path, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, decodeErr)
	}
	if resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("server: %s", msg)
	}
	return env.Data, nil
}
