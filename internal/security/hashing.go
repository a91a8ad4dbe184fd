package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies the portal secret using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost, clamped to bcrypt's range.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies password against the stored hash. Returns nil if they match;
// bcrypt.ErrMismatchedHashAndPassword or a hash error otherwise.
func (h *Hasher) Compare(hash string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), password)
}

// SecretChecker holds the bcrypt hash of one shared secret, computed once at startup.
type SecretChecker struct {
	hasher *Hasher
	hash   string
}

// NewSecretChecker hashes secret with h. The plaintext is not retained.
func NewSecretChecker(h *Hasher, secret string) (*SecretChecker, error) {
	hash, err := h.Hash([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &SecretChecker{hasher: h, hash: hash}, nil
}

// Matches reports whether password equals the configured secret.
func (c *SecretChecker) Matches(password string) bool {
	return c.hasher.Compare(c.hash, []byte(password)) == nil
}
