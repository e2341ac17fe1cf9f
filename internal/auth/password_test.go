package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	// The stored value must never equal the plaintext.
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	assert.NoError(t, CheckPassword("secret123", hashed))
	assert.Error(t, CheckPassword("wrong-password", hashed))
	assert.Error(t, CheckPassword("", hashed))
}

func TestHashPassword_CostFallback(t *testing.T) {
	hashed, err := HashPassword("secret123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_NonDeterministic(t *testing.T) {
	first, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	// Salted hashes differ even for identical inputs.
	assert.NotEqual(t, first, second)
}

func TestIsHashed(t *testing.T) {
	hashed, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, IsHashed(hashed))
	assert.False(t, IsHashed("secret123"))
	assert.False(t, IsHashed(""))
}
