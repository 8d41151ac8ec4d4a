package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72 byte input limit
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher hashes and verifies restaurant passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	// SimulateVerify spends the same work as Verify without a stored digest
	SimulateVerify(plaintext string)
}

// BcryptPasswordHasher implements PasswordHasher with bcrypt
type BcryptPasswordHasher struct {
	cost        int
	dummyDigest []byte
}

// NewBcryptPasswordHasher creates a hasher with the given cost. A digest of a
// random value is computed once so that SimulateVerify matches Verify's timing.
func NewBcryptPasswordHasher(cost int) (*BcryptPasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("restaurant-hub-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}

	return &BcryptPasswordHasher{cost: cost, dummyDigest: dummy}, nil
}

// Hash returns a salted bcrypt digest of plaintext
func (h *BcryptPasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Any error, including a
// malformed digest, is a failed verification.
func (h *BcryptPasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func (h *BcryptPasswordHasher) SimulateVerify(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, []byte(plaintext))
}
