package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/campusmaster/campus/pkg/domain"
)

// LoginRequest is the payload for /authenticate.
type LoginRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
}

// RegisterRequest is the payload for /registerNewUser. Role is sent as a
// query parameter, not in the body.
type RegisterRequest struct {
	Email     string `json:"userEmail"`
	FirstName string `json:"userFirstName"`
	LastName  string `json:"userLastName"`
	Password  string `json:"userPassword"`
	Role      string `json:"-"`
}

// UpdateUserRequest is a partial profile update.
type UpdateUserRequest struct {
	Email     string `json:"userEmail,omitempty"`
	FirstName string `json:"userFirstName,omitempty"`
	LastName  string `json:"userLastName,omitempty"`
}

// Authenticate exchanges credentials for a bearer token and profile.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	if err := c.post(ctx, "/authenticate", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("client.Authenticate: %w", err)
	}
	return &resp, nil
}

// RegisterNewUser creates an account. Teacher registrations start suspended
// until an admin approves them.
func (c *Client) RegisterNewUser(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	path := "/registerNewUser"
	if req.Role != "" {
		path += "?role=" + url.QueryEscape(req.Role)
	}
	var u domain.User
	if err := c.post(ctx, path, req, &u); err != nil {
		return nil, fmt.Errorf("client.RegisterNewUser: %w", err)
	}
	return &u, nil
}

// ForgotPassword asks the backend to email a reset link. Returns the server's text reply.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var msg string
	if err := c.post(ctx, "/forgot-password", map[string]string{"userEmail": email}, &msg); err != nil {
		return "", fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return msg, nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var msg string
	path := "/reset-password?token=" + url.QueryEscape(token)
	if err := c.post(ctx, path, map[string]string{"newPassword": newPassword}, &msg); err != nil {
		return "", fmt.Errorf("client.ResetPassword: %w", err)
	}
	return msg, nil
}

// GetUserInfo returns the authenticated user's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/getUserInfo", &u); err != nil {
		return nil, fmt.Errorf("client.GetUserInfo: %w", err)
	}
	return &u, nil
}

// UpdateUserInfo updates the authenticated user's profile and returns the
// server's representation.
func (c *Client) UpdateUserInfo(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	var u domain.User
	if err := c.put(ctx, "/updateUserInfo", req, &u); err != nil {
		return nil, fmt.Errorf("client.UpdateUserInfo: %w", err)
	}
	return &u, nil
}

// --- User administration ---

// SuspendUser suspends an account. The backend may answer with an empty body,
// in which case the returned user is nil.
func (c *Client) SuspendUser(ctx context.Context, email string) (*domain.User, error) {
	var u *domain.User
	if err := c.put(ctx, "/"+url.PathEscape(email)+"/suspend", nil, &u); err != nil {
		return nil, fmt.Errorf("client.SuspendUser: %w", err)
	}
	return u, nil
}

// UnsuspendUser lifts a suspension. Unsuspending a pending teacher approves them.
func (c *Client) UnsuspendUser(ctx context.Context, email string) (*domain.User, error) {
	var u *domain.User
	if err := c.put(ctx, "/"+url.PathEscape(email)+"/unsuspend", nil, &u); err != nil {
		return nil, fmt.Errorf("client.UnsuspendUser: %w", err)
	}
	return u, nil
}

// AllUsers lists every account.
func (c *Client) AllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/all-users", &users); err != nil {
		return nil, fmt.Errorf("client.AllUsers: %w", err)
	}
	return users, nil
}

// PendingTeachers lists teacher accounts awaiting approval.
func (c *Client) PendingTeachers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/pending-teachers", &users); err != nil {
		return nil, fmt.Errorf("client.PendingTeachers: %w", err)
	}
	return users, nil
}

// ApprovedTeachers lists approved teacher accounts.
func (c *Client) ApprovedTeachers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/approved-teachers", &users); err != nil {
		return nil, fmt.Errorf("client.ApprovedTeachers: %w", err)
	}
	return users, nil
}
