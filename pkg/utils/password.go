package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies credentials with bcrypt.
// The digest carries its own algorithm tag, cost and random salt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// NewPasswordHasherWithCost returns a hasher with an explicit cost,
// clamped to bcrypt's minimum.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a bcrypt hash from a plain text password
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify compares a plain text password with a bcrypt digest.
// A malformed digest is reported as a mismatch.
func (h *PasswordHasher) Verify(password, digest string) bool {
	if digest == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
