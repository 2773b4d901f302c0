package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials owns password hashing and opaque credential issuance.
type Credentials struct {
	cost int
}

// NewCredentials creates a manager with the given bcrypt cost. A cost
// outside bcrypt's valid range falls back to the library default.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// HashPassword derives a salted, irreversible bcrypt hash of plaintext.
func (c *Credentials) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// EnsureHashed hashes value unless it already is a bcrypt hash. Update
// paths route passwords through here so a stored hash is never re-hashed.
func (c *Credentials) EnsureHashed(value string) (string, error) {
	if IsHashed(value) {
		return value, nil
	}
	return c.HashPassword(value)
}

// IsHashed reports whether value carries a bcrypt hash prefix.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

// VerifyPassword checks plaintext against a stored hash. bcrypt's
// comparison does not leak mismatch position timing.
func (c *Credentials) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken returns a fresh bearer token: 32 random bytes as 64 lowercase
// hex characters. Uniqueness among stored tokens is enforced by the store.
func IssueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueUserID returns a short opaque user id: the first 8 hex characters of
// a random UUID, uppercased.
func IssueUserID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
