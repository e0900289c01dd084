package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// AdminSecretHeader carries the shared admin secret on admin routes
const AdminSecretHeader = "X-Admin-Secret"

// TokenStore holds the bearer credential
type TokenStore interface {
	Get() string
	Set(tok string)
}

// Options configures a Client
type Options struct {
	BaseURL     string
	AdminSecret string
	Tokens      TokenStore
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

// Client calls the pool marketplace API. Every operation returns either
// its payload or an *Error.
type Client struct {
	baseURL     string
	adminSecret string
	tokens      TokenStore
	httpClient  *http.Client
	logger      zerolog.Logger
}

// New creates an API client. No timeout is set on the default HTTP client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		adminSecret: opts.AdminSecret,
		tokens:      opts.Tokens,
		httpClient:  httpClient,
		logger:      opts.Logger,
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	admin  bool
}

// do performs req and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return unknownError(err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return unknownError(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// Admin routes use the shared secret instead of the bearer credential
	bearer := ""
	if req.admin {
		httpReq.Header.Set(AdminSecretHeader, c.adminSecret)
	} else if c.tokens != nil {
		bearer = c.tokens.Get()
		if bearer != "" {
			httpReq.Header.Set("Authorization", "Bearer "+bearer)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", req.method).
			Str("path", req.path).
			Msg("Request failed")
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := normalizeStatus(resp.StatusCode, data)
		c.logger.Warn().
			Str("method", req.method).
			Str("path", req.path).
			Int("status", resp.StatusCode).
			Str("code", apiErr.Code).
			Msg("Request rejected")

		if resp.StatusCode == http.StatusUnauthorized && bearer != "" && IsAuthFailure(apiErr.Code) {
			c.tokens.Set("")
			c.logger.Info().Str("code", apiErr.Code).Msg("Access token invalidated")
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return unknownError(err)
	}
	return nil
}
