// Package client forwards validated gateway traffic to the backend server
// and relays the backend response untouched.
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"shareit/util/httpx"
	"shareit/util/identity"
)

type Client struct {
	base string
	http *http.Client
}

func New(serverURL string) *Client {
	return &Client{
		base: strings.TrimRight(serverURL, "/"),
		http: httpx.Client(),
	}
}

// Do proxies one request. callerID is the raw X-Sharer-User-Id header value,
// forwarded verbatim when present; the returned status and body are the
// backend's, untouched.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, callerID string, body []byte) (int, []byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, out, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, callerID string) (int, []byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, callerID, nil)
}

func (c *Client) Post(ctx context.Context, path, callerID string, body []byte) (int, []byte, error) {
	return c.Do(ctx, http.MethodPost, path, nil, callerID, body)
}

func (c *Client) Patch(ctx context.Context, path string, query url.Values, callerID string, body []byte) (int, []byte, error) {
	return c.Do(ctx, http.MethodPatch, path, query, callerID, body)
}

func (c *Client) Delete(ctx context.Context, path, callerID string) (int, []byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, callerID, nil)
}
