package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/zkeq/Self-Cinema/domain/admin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the auth module configuration.
type Config struct {
	// DBPath is the sqlite database file path.
	DBPath string

	// JWTSecret signs access tokens.
	JWTSecret string

	// TokenDuration is the access token lifetime.
	TokenDuration time.Duration

	// AdminUsername and AdminPassword are the bootstrap credentials
	// reconciled into the database at startup.
	AdminUsername string
	AdminPassword string

	// BcryptCost tunes password hashing; 0 keeps the default.
	BcryptCost int
}

// AuthModule provides admin authentication services.
type AuthModule struct {
	config  Config
	db      *gorm.DB
	service *AuthService
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(cfg Config) *AuthModule {
	if cfg.DBPath == "" {
		cfg.DBPath = "self_cinema.db"
	}
	if cfg.TokenDuration <= 0 {
		cfg.TokenDuration = 30 * time.Minute
	}
	return &AuthModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start opens the database, migrates the admin schema and reconciles the
// bootstrap admin account.
func (m *AuthModule) Start(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Admin{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewGormAdminRepository(db)
	hasher := NewPasswordHasher(m.config.BcryptCost)

	jwtConfig := DefaultJWTConfig()
	if m.config.JWTSecret != "" {
		jwtConfig.SecretKey = m.config.JWTSecret
	}
	jwtConfig.TokenDuration = m.config.TokenDuration

	m.service = NewAuthService(repo, hasher, NewJWTManager(jwtConfig))

	if m.config.AdminUsername != "" {
		if err := m.service.EnsureAdmin(ctx, m.config.AdminUsername, m.config.AdminPassword); err != nil {
			return fmt.Errorf("failed to ensure admin account: %w", err)
		}
		log.Printf("[auth] Admin account ready (username: %s)", m.config.AdminUsername)
	}

	log.Printf("[auth] Module started (database: %s)", m.config.DBPath)
	return nil
}

// Stop closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.config.DBPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	log.Println("[auth] Registered services: login, validate-token")
	return nil
}

// handleLogin handles admin login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, err := m.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		TokenType:   tokens.TokenType,
	}, nil
}

// handleValidateToken handles token validation. Validation failures travel
// as a response, not an error.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil
	}

	return ValidateTokenResponse{
		Valid:    true,
		Username: claims.Username,
	}, nil
}
