package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultHashCost is the bcrypt cost used when the module config leaves
// BcryptCost unset. Admin passwords are hashed once at bootstrap and again
// only when the configured credentials change, so the slower cost is
// affordable.
const defaultHashCost = 12

// PasswordHasher derives and checks bcrypt hashes for admin credentials.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher at the given bcrypt cost. A cost of
// zero falls back to defaultHashCost; out-of-range values are clamped to
// the bcrypt limits so a bad config cannot break the admin bootstrap.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = defaultHashCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a bcrypt hash of password at the configured cost.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A malformed
// hash reads the same as a mismatch; callers treat both as bad
// credentials.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
