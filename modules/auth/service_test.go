package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/admin"
	"golang.org/x/crypto/bcrypt"
)

// mockAdminRepository implements AdminRepository for testing.
type mockAdminRepository struct {
	admins map[string]*domain.Admin
	saves  int
}

var _ AdminRepository = (*mockAdminRepository)(nil)

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{
		admins: make(map[string]*domain.Admin),
	}
}

func (m *mockAdminRepository) FindByUsername(username string) (*domain.Admin, error) {
	admin, ok := m.admins[username]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (m *mockAdminRepository) Create(admin *domain.Admin) error {
	m.admins[admin.Username] = admin
	return nil
}

func (m *mockAdminRepository) Save(admin *domain.Admin) error {
	m.admins[admin.Username] = admin
	m.saves++
	return nil
}

func newTestService(repo AdminRepository) *AuthService {
	// MinCost keeps the bootstrap/reconciliation tests fast.
	return NewAuthService(repo, NewPasswordHasher(bcrypt.MinCost), NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test",
	}))
}

func TestEnsureAdminCreatesAccount(t *testing.T) {
	repo := newMockAdminRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	admin, err := repo.FindByUsername("admin")
	if err != nil {
		t.Fatalf("admin account not created: %v", err)
	}
	if admin.PasswordHash == "admin123" {
		t.Error("password stored as plaintext")
	}
}

func TestEnsureAdminRehashesChangedPassword(t *testing.T) {
	repo := newMockAdminRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "old-password"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "admin", "new-password"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if repo.saves != 1 {
		t.Errorf("saves = %d, want 1 (rehash on changed password)", repo.saves)
	}

	if _, err := svc.Authenticate(ctx, "admin", "old-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "admin", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := newMockAdminRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	if repo.saves != 0 {
		t.Errorf("saves = %d, want 0 (unchanged password must not rehash)", repo.saves)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newMockAdminRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	tokens, err := svc.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if tokens.AccessToken == "" {
		t.Error("Authenticate() returned empty token")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("TokenType = %v, want Bearer", tokens.TokenType)
	}
	if tokens.ExpiresIn != 1800 {
		t.Errorf("ExpiresIn = %v, want 1800", tokens.ExpiresIn)
	}

	claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("claims.Username = %v, want admin", claims.Username)
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	repo := newMockAdminRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "admin123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(newMockAdminRepository())

	if _, err := svc.ValidateToken(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}
