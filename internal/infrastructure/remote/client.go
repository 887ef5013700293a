package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrNetwork means the request could not be sent or no response arrived in time.
	ErrNetwork = errors.New("remote: network failure")
	// ErrServer means the service answered with a non-2xx status.
	ErrServer = errors.New("remote: server failure")
	// ErrDecode means a 2xx body was not the expected JSON.
	ErrDecode = errors.New("remote: malformed response")
)

// StatusError carries the status code of a rejected request.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrServer }

// Client is a JSON-over-HTTP client bound to one collection endpoint.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for base (e.g. http://host/api/users). A zero timeout means 5s.
func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
				DialContext:         (&net.Dialer{Timeout: timeout}).DialContext,
			},
		},
	}
}

// NewClientWith uses the provided http.Client, mostly for tests.
func NewClientWith(base string, hc *http.Client) *Client {
	return &Client{base: base, http: hc}
}

// Base returns the collection endpoint.
func (c *Client) Base() string { return c.base }

func (c *Client) url(path string) string {
	if path == "" {
		return c.base
	}
	return c.base + "/" + path
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	u := c.url(path)
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &StatusError{Method: method, URL: u, Code: resp.StatusCode}
	}
	return resp, nil
}

// GetJSON issues GET {base}/{path} and decodes the body into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// PostJSON issues POST {base}/{path} with body encoded as JSON. The reply body is ignored.
func (c *Client) PostJSON(ctx context.Context, path string, body any) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Delete issues DELETE {base}/{path}.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Probe issues GET {base}/health and reports nil on any 2xx.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "health", nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
