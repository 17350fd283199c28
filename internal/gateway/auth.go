package gateway

import (
	"context"

	"github.com/learnsphere/marketplace-companion/internal/models"
)

// Login exchanges credentials for a token and identity.
// Neither endpoint in this file needs a bearer - they're how we get one.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.Credentials{Email: email, Password: password}).
		Post("/auth/login")
	if err := c.checkResponse(resp, err, "login"); err != nil {
		return nil, err
	}

	var payload models.AuthPayload
	if err := c.decode(resp, &payload, "login"); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Signup registers a new account. The role is client-supplied and only
// trusted once the server echoes it back in the payload.
func (c *Client) Signup(ctx context.Context, email, password, name string, role models.Role) (*models.AuthPayload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.SignupInput{Email: email, Password: password, Name: name, Role: role}).
		Post("/auth/signup")
	if err := c.checkResponse(resp, err, "signup"); err != nil {
		return nil, err
	}

	var payload models.AuthPayload
	if err := c.decode(resp, &payload, "signup"); err != nil {
		return nil, err
	}
	return &payload, nil
}
