package backend

// Package backend is the HTTP adapter for the platform API (ports.Backend).

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

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

const (
	pathLogin         = "/api/users/login"
	pathUsers         = "/api/users"
	pathOrganisations = "/api/organisations"
	pathResetConfirm  = "/api/users/reset-password/confirm"

	maxErrorBody = 64 << 10
)

// Config captures how to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client talks JSON to the platform backend.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

var (
	_ ports.Backend      = (*Client)(nil)
	_ ports.BackendError = (*Error)(nil)
)

// NewClient builds a backend client. BaseURL must be an absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("backend base url must be absolute http(s): %q", raw)
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, client: hc}, nil
}

func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (ports.LoginResponse, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, "", req, &out); err != nil {
		return ports.LoginResponse{}, err
	}
	return out.toPort(), nil
}

func (c *Client) CreateUser(ctx context.Context, req ports.CreateUserRequest) error {
	return c.do(ctx, http.MethodPost, pathUsers, "", req, nil)
}

func (c *Client) CreateOrganisation(
	ctx context.Context,
	req ports.CreateOrganisationRequest,
) (ports.CreateOrganisationResponse, error) {
	var out createOrganisationResponse
	if err := c.do(ctx, http.MethodPost, pathOrganisations, "", req, &out); err != nil {
		return ports.CreateOrganisationResponse{}, err
	}
	return out.toPort(), nil
}

func (c *Client) UpdateUser(
	ctx context.Context,
	token string,
	req ports.UpdateUserRequest,
) (ports.UpdateUserResponse, error) {
	var out ports.UpdateUserResponse
	path := pathUsers + "/" + url.PathEscape(req.UserID)
	if err := c.do(ctx, http.MethodPut, path, token, req, &out); err != nil {
		return ports.UpdateUserResponse{}, err
	}
	return out, nil
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, req ports.ConfirmResetRequest) error {
	return c.do(ctx, http.MethodPost, pathResetConfirm, "", req, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		if errors.Is(decodeErr, io.EOF) {
			return nil
		}
		return &Error{Status: resp.StatusCode, Message: "invalid response body", Cause: decodeErr}
	}
	return nil
}
