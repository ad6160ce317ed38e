// Package client calls a running bwtserver.
package client

import (
	"bwtnet/internal/ctxlog"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ResponseError is returned for any non-2xx answer from the server.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHostPort builds a client for http://host:port.
func NewHostPort(host string, port int, opts ...Option) *Client {
	return New("http://"+net.JoinHostPort(host, strconv.Itoa(port)), opts...)
}

func (c *Client) Transform(ctx context.Context, sequence string) (string, error) {
	return c.call(ctx, "bwt", map[string]string{"Sequence": sequence})
}

func (c *Client) Inverse(ctx context.Context, transformed string) (string, error) {
	return c.call(ctx, "inverse_bwt", map[string]string{"BWT": transformed})
}

func (c *Client) call(ctx context.Context, endpoint string, data map[string]string) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("client: marshal request: %w", err)
	}

	url := c.baseURL + "/" + endpoint
	ctxlog.Get(ctx).Debug("submitting request", "url", url, "bytes", len(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("client: %s: %w", endpoint, err)
	}
	defer ctxlog.Close(ctx, "response body", resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("client: %s: read response: %w", endpoint, err)
	}

	var answer struct {
		Result *string `json:"result"`
		Error  string  `json:"error"`
	}
	decodeErr := json.Unmarshal(raw, &answer)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := answer.Error
		if decodeErr != nil {
			msg = strings.TrimSpace(string(raw))
		}
		return "", &ResponseError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("client: %s: decode response: %w", endpoint, decodeErr)
	}
	if answer.Result == nil {
		return "", fmt.Errorf("client: %s: response has no result", endpoint)
	}

	return *answer.Result, nil
}
