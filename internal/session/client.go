package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"handmade-market/internal/user"
)

// AuthResponse is the body returned by every auth endpoint. Token may be
// empty on a profile update, meaning the current token stays valid.
type AuthResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// Client talks to the remote authentication API.
type Client interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	Register(ctx context.Context, in user.RegisterInput) (AuthResponse, error)
	UpdateProfile(ctx context.Context, token string, p user.ProfileUpdate) (AuthResponse, error)
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, hc *http.Client) Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

func (c *httpClient) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/login", "", body)
}

func (c *httpClient) Register(ctx context.Context, in user.RegisterInput) (AuthResponse, error) {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in)
}

func (c *httpClient) UpdateProfile(ctx context.Context, token string, p user.ProfileUpdate) (AuthResponse, error) {
	return c.do(ctx, http.MethodPut, "/auth/profile", token, p)
}

func (c *httpClient) do(ctx context.Context, method, path, token string, payload any) (AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return AuthResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return AuthResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return AuthResponse{}, fmt.Errorf("%w: read body: %w", ErrAuthFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		return AuthResponse{}, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	var out AuthResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return AuthResponse{}, fmt.Errorf("%w: decode body: %w", ErrAuthFailed, err)
	}
	return out, nil
}
