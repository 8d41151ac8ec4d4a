package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptPasswordHasher {
	t.Helper()
	h, err := NewBcryptPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptPasswordHasher(t *testing.T) {
	_, err := NewBcryptPasswordHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{"Simple", "secret123"},
		{"SingleChar", "p"},
		{"Unicode", "пароль-ünïcode"},
		{"MaxLength", strings.Repeat("a", 72)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, digest)
			assert.True(t, h.Verify(tt.password, digest))
			assert.False(t, h.Verify("x"+tt.password[1:], digest))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("secret123")
	require.NoError(t, err)
	second, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret123", first))
	assert.True(t, h.Verify("secret123", second))
}

func TestHashRejectsLongPassword(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyFailsClosed(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name   string
		digest string
	}{
		{"Empty", ""},
		{"Plaintext", "secret123"},
		{"Truncated", digest[:20]},
		{"CorruptedPrefix", "$9z$" + digest[4:]},
		{"Garbage", "$2a$10$!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify("secret123", tt.digest))
			})
		})
	}
}

func TestSimulateVerify(t *testing.T) {
	h := newTestHasher(t)
	assert.NotPanics(t, func() { h.SimulateVerify("anything") })
}
