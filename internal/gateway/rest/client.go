// Package rest implements the gateway collaborators over the marketplace
// backend's JSON API.
package rest

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

	"github.com/google/uuid"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/gateway"
	"marketplace-admin-backend/internal/logger"
)

const (
	backendName      = "rest"
	maxErrorBodySize = 64 << 10
)

// Client performs authenticated JSON calls against the backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  gateway.TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens gateway.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Gateway exposes the client as a full set of collaborators.
func (c *Client) Gateway() gateway.Gateway {
	return gateway.Gateway{
		Users:    &userGateway{c: c},
		Jobs:     &jobGateway{c: c},
		Bookings: &bookingGateway{c: c},
		Auth:     &authGateway{c: c},
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends body (if non-nil) as JSON and decodes a 2xx response into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (err error) {
	requestID := uuid.NewString()
	logger.GatewayCall(backendName, op, "method", method, "path", path, "request_id", requestID)
	defer func() { logger.GatewayResult(backendName, op, err, "request_id", requestID) }()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.GatewayError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &domain.GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, tokErr := c.tokens.Token(ctx); tokErr == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &domain.GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &domain.UnauthorizedError{Reason: domain.ReasonSessionExpired, Message: msg}
	}
	return &domain.GatewayError{
		Op:      op,
		Status:  resp.StatusCode,
		Message: msg,
		Err:     fmt.Errorf("backend responded %s", resp.Status),
	}
}

// decodeList accepts a bare JSON array or an object wrapping it under "data"
// or under the collection's own name.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []T
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	for _, k := range []string{"data", key} {
		if inner, ok := envelope[k]; ok {
			return decodeList[T](inner, key)
		}
	}
	return nil, fmt.Errorf("response has neither a list nor a %q field", key)
}

func listOf[T any](ctx context.Context, c *Client, op, path, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw, key)
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("failed to decode list: %w", err)}
	}
	return items, nil
}
