// Package httpapi is the JSON-over-HTTP client every backend adapter shares.
// It stamps auth and request-id headers on each call and maps responses onto
// the apperrors taxonomy: 401 is an auth failure, any other non-2xx or
// transport failure is a network failure.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/id"
	"logbook/internal/platform/logging"
)

const maxErrorBody = 64 << 10

// HeaderFunc supplies the headers for one request, typically auth headers.
type HeaderFunc func(ctx context.Context) http.Header

type Request struct {
	Method string
	// Path is appended to the base URL; callers escape dynamic segments.
	Path  string
	Query url.Values
	Body  any
}

type Client struct {
	baseURL string
	http    *http.Client
	headers HeaderFunc
	ids     id.Generator
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, headers HeaderFunc, ids id.Generator, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		headers: headers,
		ids:     ids,
		logger:  logging.OrNop(logger),
	}, nil
}

// Do sends req and decodes a JSON response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", req.Method, req.Path, err)
	}
	if c.headers != nil {
		for k, vs := range c.headers(ctx) {
			for _, v := range vs {
				httpReq.Header.Add(k, v)
			}
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := c.ids.New()
	httpReq.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("method", req.Method), zap.String("path", req.Path), zap.String("request_id", requestID))
	log.Debug("backend request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("backend request failed", zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrNetwork, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("backend returned error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", text))
		return &apperrors.StatusError{Code: resp.StatusCode, Body: string(text)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%w: decode %s %s response: %v", apperrors.ErrNetwork, req.Method, req.Path, err)
	}
	return nil
}
