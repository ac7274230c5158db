package client

import (
	"context"
	"net/http"
	"time"
)

// User is the account shape returned by the auth endpoints.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type sessionPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type verifyPayload struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and installs the token on the
// client so subsequent calls are authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var payload sessionPayload
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil,
		loginRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return nil, err
	}

	c.SetToken(payload.Token)
	return &payload.User, nil
}

// Register creates an account and installs the fresh session token.
func (c *Client) Register(ctx context.Context, email, name, password string) (*User, error) {
	var payload sessionPayload
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil,
		registerRequest{Email: email, Name: name, Password: password}, &payload)
	if err != nil {
		return nil, err
	}

	c.SetToken(payload.Token)
	return &payload.User, nil
}

// Verify checks the held token against the API and returns the account it
// belongs to. A rejected token is cleared before the error is returned.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	var payload verifyPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/verify", nil, nil, &payload); err != nil {
		if IsUnauthorized(err) {
			c.ClearToken()
		}
		return nil, err
	}
	return &payload.User, nil
}

// Logout revokes the session server side and always drops the local token,
// even when the revocation call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil)
	c.ClearToken()
	return err
}
