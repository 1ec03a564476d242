package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// NewGoTrueClient creates a client for the auth API at baseURL.
func NewGoTrueClient(baseURL, apiKey string) *GoTrueClient {
	return &GoTrueClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
	}
}

// Ensure GoTrueClient implements the Provider interface.
var _ Provider = (*GoTrueClient)(nil)

// SignUp creates an account. ErrAlreadyRegistered is returned for a known email.
func (c *GoTrueClient) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &raw)
	if err != nil {
		return nil, err
	}

	// The response is the user itself when confirmation is required, or a session
	// wrapping the user when auto-confirm is on.
	var session tokenResponse
	if err := json.Unmarshal(raw, &session); err == nil && session.User.ID != "" {
		return &Identity{ID: session.User.ID, Email: session.User.Email}, nil
	}
	var user authUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("signup response carried no user id")
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

// SignIn exchanges credentials for a session.
func (c *GoTrueClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Unix(resp.ExpiresAt, 0).UTC()
	if resp.ExpiresAt == 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}
	return &Session{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
		ExpiresAt:   expiresAt,
	}, nil
}

// SignOut revokes the session behind accessToken.
func (c *GoTrueClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

// GetUser returns the identity behind accessToken.
func (c *GoTrueClient) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	var user authUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (c *GoTrueClient) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	log.Debug("Requesting auth API", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Debug("Received non-OK HTTP status from auth API", "status", resp.StatusCode, "path", path, "body", string(respBody))
		return mapAuthError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mapAuthError(status int, body []byte) error {
	var e errorResponse
	_ = json.Unmarshal(body, &e)
	msg := strings.ToLower(strings.Join([]string{e.ErrorCode, e.Msg, e.Message, e.Error, e.ErrorDescription}, " "))

	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "user_already_exists"), strings.Contains(msg, "email_exists"):
		return ErrAlreadyRegistered
	case strings.Contains(msg, "not confirmed"), strings.Contains(msg, "email_not_confirmed"):
		return ErrEmailNotConfirmed
	case strings.Contains(msg, "invalid login credentials"), strings.Contains(msg, "invalid_credentials"), strings.Contains(msg, "invalid_grant"):
		return ErrInvalidCredentials
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrInvalidSession
	}
	return fmt.Errorf("auth API returned status %d: %s", status, strings.TrimSpace(msg))
}
