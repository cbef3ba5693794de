package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mascotacare/vetcli/internal/model"
	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	if cached, ok := c.cache.Get(cacheKeyUsers); ok {
		return cached.([]model.User), nil
	}
	var out []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyUsers, out)
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, userID int) (*model.User, error) {
	var out model.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("datos de usuario inválidos", err)
	}
	var out model.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/", req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID int, req *model.UpdateUserRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("datos de usuario inválidos", err)
	}
	var out model.User
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d/", userID), req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil); err != nil {
		return err
	}
	c.invalidateLists()
	return nil
}

// ListAssistants returns the users who can be assigned to patients.
func (c *Client) ListAssistants(ctx context.Context) ([]model.User, error) {
	if cached, ok := c.cache.Get(cacheKeyAssistants); ok {
		return cached.([]model.User), nil
	}
	var out []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/assistants", nil, &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyAssistants, out)
	return out, nil
}
