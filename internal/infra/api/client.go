package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/production-bot/internal/infra/metrics"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 4 << 10
)

// Client тонкий JSON-клиент к REST-бэкенду производства.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    20,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		log: log,
	}
}

// StatusError ответ бэкенда с кодом вне 2xx.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (c *Client) Get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, route, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, route, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, route, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, route, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, route, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, route, path string) error {
	return c.Do(ctx, http.MethodDelete, route, path, nil, nil, nil)
}

// Do выполняет запрос. route: шаблон пути ("/products/{id}"), идёт в метки метрик,
// path: фактический путь.
func (c *Client) Do(ctx context.Context, method, route, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequests.WithLabelValues(method, route, "error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.BackendRequests.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
