// Package cryptox holds the password hashing primitives used by the server.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptSaltPrefixLen is the length of "$2a$NN$" plus the 22-char encoded salt.
const bcryptSaltPrefixLen = 29

// ErrPasswordTooLong is returned by Hash for passwords bcrypt would truncate.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// MaxPasswordLength is the longest password (in bytes) bcrypt accepts.
const MaxPasswordLength = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// The cost parameter is encoded into every hash, so raising the cost later
// only affects new hashes; previously stored ones keep verifying.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost. Zero selects
// bcrypt.DefaultCost; out of range values are clamped.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost reports the bcrypt cost used for new hashes.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash derives a salted hash from password using a fresh random salt.
// The returned salt is the "$2a$<cost>$<salt>" prefix of hash; it is kept
// only for record compatibility, Verify never needs it.
func (h *PasswordHasher) Hash(password string) (hash string, salt string, err error) {
	if len(password) > MaxPasswordLength {
		return "", "", ErrPasswordTooLong
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", "", err
	}

	hash = string(b)
	if len(hash) < bcryptSaltPrefixLen {
		return "", "", errors.New("unexpected bcrypt hash format")
	}

	return hash, hash[:bcryptSaltPrefixLen], nil
}

// Verify reports whether password matches hash. A mismatch or a malformed
// hash both yield false. Passwords longer than MaxPasswordLength never
// match: bcrypt would otherwise compare only their first 72 bytes.
func (h *PasswordHasher) Verify(password, hash string) bool {
	if len(password) > MaxPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
