package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"bravonest/internal/domain"
)

// AuthClient talks to the backend's authentication sub-interface.
type AuthClient struct {
	baseURL string
	apiKey  string
	client  HTTPClient
	timeout time.Duration
}

func NewAuthClient(baseURL, apiKey string, client HTTPClient, timeout time.Duration) *AuthClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &AuthClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		timeout: timeout,
	}
}

type authUser struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	EmailConfirmedAt string            `json:"email_confirmed_at"`
	UserMetadata     map[string]string `json:"user_metadata"`
}

func (u authUser) toDomain() domain.User {
	user := domain.User{
		ID:               u.ID,
		Email:            u.Email,
		Phone:            u.Phone,
		EmailConfirmedAt: u.EmailConfirmedAt,
	}
	if u.UserMetadata != nil {
		user.Name = u.UserMetadata["name"]
		if user.Phone == "" {
			user.Phone = u.UserMetadata["phone"]
		}
	}
	return user
}

type sessionResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         authUser `json:"user"`
}

func (r sessionResponse) toDomain() *domain.Session {
	session := &domain.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		User:         r.User.toDomain(),
	}
	if r.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return session
}

func (c *AuthClient) do(ctx context.Context, op, method, path, token string, body interface{}, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.E(domain.KindGateway, op, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.E(domain.KindGateway, op, "failed to build request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.E(domain.KindTimeout, op, "auth request timed out", err)
		}
		return domain.E(domain.KindGateway, op, "auth request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var backendErr struct {
			Message          string `json:"message"`
			ErrorDescription string `json:"error_description"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &backendErr)

		msg := backendErr.Message
		if msg == "" {
			msg = backendErr.ErrorDescription
		}
		if msg == "" {
			msg = "authentication request rejected"
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return domain.E(domain.KindUnauthenticated, op, msg, nil)
		}
		return domain.E(domain.KindGateway, op, msg, nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.E(domain.KindGateway, op, "malformed auth response", err)
		}
	}
	return nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp sessionResponse
	if err := c.do(ctx, "SignInWithPassword", http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// SignUp registers a new identity with profile metadata attached. Depending
// on backend settings the returned session may lack an access token until
// the identity is confirmed.
func (c *AuthClient) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}
	// When confirmation is pending the backend returns the bare user
	// object instead of a session, so decode both shapes at once.
	var resp struct {
		sessionResponse
		authUser
	}
	if err := c.do(ctx, "SignUp", http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}
	session := resp.sessionResponse.toDomain()
	if session.User.ID == "" && resp.authUser.ID != "" {
		session.User = resp.authUser.toDomain()
	}
	return session, nil
}

// SignOut revokes the session on the backend.
func (c *AuthClient) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, "SignOut", http.MethodPost, "/auth/v1/logout", token, nil, nil)
}

// GetUser resolves the identity behind an access token.
func (c *AuthClient) GetUser(ctx context.Context, token string) (*domain.User, error) {
	var user authUser
	if err := c.do(ctx, "GetUser", http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, domain.E(domain.KindUnauthenticated, "GetUser", "no identity for token", nil)
	}
	resolved := user.toDomain()
	return &resolved, nil
}
