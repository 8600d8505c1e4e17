package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/admin"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenResult carries an issued access token.
type TokenResult struct {
	AccessToken string
	ExpiresIn   int64
	TokenType   string
}

// AuthService handles admin authentication business logic.
type AuthService struct {
	repo   AdminRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo AdminRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// EnsureAdmin reconciles the configured admin credentials with the
// database at startup. A missing account is created; an existing account
// whose hash no longer matches the configured password is rehashed, so
// changing the environment credentials takes effect on restart.
func (s *AuthService) EnsureAdmin(_ context.Context, username, password string) error {
	admin, err := s.repo.FindByUsername(username)
	if err != nil {
		if !errors.Is(err, ErrAdminNotFound) {
			return fmt.Errorf("failed to look up admin: %w", err)
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		return s.repo.Create(&domain.Admin{
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		})
	}

	if s.hasher.Verify(password, admin.PasswordHash) {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin.PasswordHash = hash
	return s.repo.Save(admin)
}

// Authenticate verifies admin credentials and returns an access token.
func (s *AuthService) Authenticate(_ context.Context, username, password string) (*TokenResult, error) {
	admin, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenResult{
		AccessToken: token,
		ExpiresIn:   s.jwt.TokenDuration(),
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		Username: claims.Username,
	}, nil
}
