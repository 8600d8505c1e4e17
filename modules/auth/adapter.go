package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/zkeq/Self-Cinema/domain/admin"
)

// AuthPort defines the interface for authentication operations. This is
// the port other modules use to access auth functionality.
type AuthPort interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Login authenticates an admin and returns an access token.
func (a *AuthAdapter) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "login", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return &resp, nil
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Claims{
		Username: resp.Username,
	}, nil
}
