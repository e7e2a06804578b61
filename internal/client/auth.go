package client

import (
	"context"
	"net/http"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
)

// Session is what the server hands back after login or signup.
type Session struct {
	User         listing.Member `json:"user"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Signup registers a new member.
func (c *Client) Signup(ctx context.Context, email, username, password string) (*Session, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout revokes a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, body, nil)
}
