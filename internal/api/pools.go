package api

import (
	"context"
	"net/http"
	"net/url"

	"pool-market-client/internal/models"
)

type poolsResponse struct {
	Pools []models.Pool `json:"pools"`
}

type poolResponse struct {
	Pool models.Pool `json:"pool"`
}

// ListPools calls GET /pools, optionally restricted to one owner
func (c *Client) ListPools(ctx context.Context, userID string) ([]models.Pool, error) {
	var query url.Values
	if userID != "" {
		query = url.Values{"userId": {userID}}
	}

	var resp poolsResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/pools",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Pools, nil
}

// GetPool calls GET /pool?id=
func (c *Client) GetPool(ctx context.Context, id string) (*models.Pool, error) {
	var resp poolResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/pool",
		query:  url.Values{"id": {id}},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Pool, nil
}

// CreatePool uploads inline images and calls POST /pools
func (c *Client) CreatePool(ctx context.Context, input models.PoolInput) (*models.Pool, error) {
	images, err := c.resolveImages(ctx, input.Images, FolderPools)
	if err != nil {
		return nil, err
	}
	input.Images = images

	var resp poolResponse
	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   "/pools",
		body:   map[string]any{"pool": input},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Pool, nil
}

// UpdatePool uploads inline images and calls PUT /pools/:id
func (c *Client) UpdatePool(ctx context.Context, id string, input models.PoolInput) (*models.Pool, error) {
	images, err := c.resolveImages(ctx, input.Images, FolderPools)
	if err != nil {
		return nil, err
	}
	input.Images = images

	var resp poolResponse
	err = c.do(ctx, request{
		method: http.MethodPut,
		path:   "/pools/" + url.PathEscape(id),
		body:   map[string]any{"pool": input},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Pool, nil
}

// DeletePool calls DELETE /pools/:id
func (c *Client) DeletePool(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/pools/" + url.PathEscape(id),
	}, nil)
}
