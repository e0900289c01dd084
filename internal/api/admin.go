package api

import (
	"context"
	"net/http"
	"net/url"

	"pool-market-client/internal/models"
)

// AdminListPools calls GET /admin/pools
func (c *Client) AdminListPools(ctx context.Context) ([]models.Pool, error) {
	var resp poolsResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/pools",
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Pools, nil
}

// AdminListUsers calls GET /admin/users
func (c *Client) AdminListUsers(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
	}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/users",
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// SetPoolVisibility calls PUT /pools/:id/visibility
func (c *Client) SetPoolVisibility(ctx context.Context, id string, req models.VisibilityRequest) (*models.Pool, error) {
	var resp poolResponse
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/pools/" + url.PathEscape(id) + "/visibility",
		body:   req,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Pool, nil
}
