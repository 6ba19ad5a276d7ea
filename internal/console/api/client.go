package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource yields the persisted bearer credential. An empty token means
// "no session"; the request is then issued unauthenticated. TokenSources are
// read-only: only the session store ever writes the credential.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the plain authorized fetch: it decorates requests with the
// current credential and returns the raw response without looking at the
// status code.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, httpc *http.Client, tokens TokenSource) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc, tokens: tokens}
}

// Do issues method path against the device. A non-nil body is sent as JSON.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpc.Do(req)
}

// VerifyAuthorization asks the device whether the current credential is
// still accepted and returns the bare status code.
func (c *Client) VerifyAuthorization(ctx context.Context) (int, error) {
	resp, err := c.Do(ctx, http.MethodGet, VerifyAuthorizationEndpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("verify authorization: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
