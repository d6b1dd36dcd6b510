package remote

import (
	"context"
	"errors"
	"net/http"

	"github.com/todtix/gamewiki-services/internal/client"
)

type sessionPayload struct {
	UserId int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

func (p sessionPayload) user() *client.User {
	return &client.User{ID: p.UserId, Email: p.Email, Name: p.Name}
}

// Session returns nil without error when no token is held or the held
// token is no longer accepted.
func (c *Client) Session(ctx context.Context) (*client.User, error) {
	if c.getToken() == "" {
		return nil, nil
	}

	var p sessionPayload
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/session", nil, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return p.user(), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*client.User, error) {
	var p sessionPayload
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &p)
	if err != nil {
		return nil, err
	}

	c.setToken(p.Token)
	return p.user(), nil
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*client.User, error) {
	var p sessionPayload
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &p)
	if err != nil {
		return nil, err
	}

	c.setToken(p.Token)
	return p.user(), nil
}

// SignOut discards the token whatever the server said.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	c.setToken("")
	return err
}
