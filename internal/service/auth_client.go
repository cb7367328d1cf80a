package service

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
)

// ErrAuthFailed indicates the remote endpoint rejected the one-time token.
var ErrAuthFailed = errors.New("token exchange failed")

type tokenExchangeRequest struct {
	Token string `json:"token"`
}

type tokenExchangeResponse struct {
	UserID uint `json:"user_id"`
}

// AuthClient exchanges one-time tokens for numeric user ids against the
// remote EAP auth endpoint.
type AuthClient struct {
	http    httpDoer
	baseURL string
}

// NewAuthClient constructs an AuthClient for the given endpoint base.
func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// SetHTTPClient replaces the HTTP client, mainly for tests.
func (c *AuthClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
		return
	}
	c.http = client
}

// SetBaseURL overrides the auth endpoint base.
func (c *AuthClient) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// ExchangeToken posts a one-time token and returns the user id it
// resolves to. Any failure maps to ErrAuthFailed; the caller redirects to
// the token acquisition page without retrying.
func (c *AuthClient) ExchangeToken(ctx context.Context, token string) (uint, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return 0, ErrAuthFailed
	}

	body, err := json.Marshal(tokenExchangeRequest{Token: trimmed})
	if err != nil {
		return 0, fmt.Errorf("build auth request: %w", err)
	}

	endpoint := c.baseURL + "/user/user-info"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cravelog/1.0")

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("%w: read response: %v", ErrAuthFailed, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("%w: %s", ErrAuthFailed, resp.Status)
	}

	var decoded tokenExchangeResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return 0, fmt.Errorf("%w: parse response: %v", ErrAuthFailed, err)
	}

	if decoded.UserID == 0 {
		return 0, fmt.Errorf("%w: missing user id", ErrAuthFailed)
	}

	return decoded.UserID, nil
}
