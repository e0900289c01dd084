package api

import (
	"context"
	"net/http"

	"pool-market-client/internal/models"
)

// Login calls POST /auth/login and stores the returned access token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.storeToken(resp.AccessToken)
	return &resp, nil
}

// Register calls POST /auth/register and stores the returned access token
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.storeToken(resp.AccessToken)
	return &resp, nil
}

// UpdateUser calls PUT /user. An inline avatar is uploaded first and sent as avatarUrl.
func (c *Client) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	if req.AvatarBase64 != "" && IsInlineImage(req.AvatarBase64) {
		url, err := c.UploadImage(ctx, req.AvatarBase64, FolderAvatars)
		if err != nil {
			return nil, err
		}
		req.AvatarURL = &url
	}
	req.AvatarBase64 = ""

	var resp struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/user",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ForgotPassword calls POST /auth/forgot-password
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   map[string]string{"email": email},
	}, nil)
}

// ResetPassword calls POST /auth/reset-password
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body: map[string]string{
			"token":    resetToken,
			"password": password,
		},
	}, nil)
}

func (c *Client) storeToken(tok string) {
	if c.tokens != nil && tok != "" {
		c.tokens.Set(tok)
	}
}
