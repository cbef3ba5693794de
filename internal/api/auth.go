package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mascotacare/vetcli/internal/model"
	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

// LoginResponse is the token grant returned by the backend.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Login exchanges credentials for a bearer token. The endpoint takes
// form-encoded fields, not JSON. Empty credentials are rejected locally
// before any network traffic.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("el nombre de usuario y la contraseña son obligatorios", nil)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", form, &out); err != nil {
		return nil, err
	}

	c.session.Set(&out.User, out.AccessToken)
	c.invalidateLists()
	return &out, nil
}

// Logout clears the in-memory session. The backend's tokens are
// stateless; there is nothing to revoke server-side.
func (c *Client) Logout() {
	c.session.Clear()
	c.invalidateLists()
}
