package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/travelrisk/internal/common"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// New returns a Client for the backend rooted at baseURL
// (e.g. "http://localhost:5050"). A zero timeout leaves the
// http.Client default in place.
func New(baseURL string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "api"),
	}
}

// do sends a JSON request and decodes a 2xx body into out (when non-nil).
// The raw body is returned so callers can keep it.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return raw, newError(resp.StatusCode, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	return raw, nil
}

func newError(status int, raw []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return &Error{StatusCode: status}
	}
	return &Error{StatusCode: status, Message: eb.Message}
}
