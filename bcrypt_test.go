package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/bazarhub/go-auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := auth.HashPassword("secret-password")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "secret-password", hash)

		assert.NoError(t, auth.ComparePasswordAndHash("secret-password", hash))
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		_, err := auth.HashPassword("")
		assert.ErrorIs(t, err, auth.ErrNoEmptyString)
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		a, err := auth.HashPassword("secret-password")
		require.NoError(t, err)
		b, err := auth.HashPassword("secret-password")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)

	t.Run("mismatched password", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("wrong-password", hash)
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("garbage hash", func(t *testing.T) {
		assert.Error(t, auth.ComparePasswordAndHash("secret-password", "not-a-hash"))
	})
}

func TestBcryptHasherCost(t *testing.T) {
	hasher := auth.BcryptHasher{Cost: 4}

	hash, err := hasher.HashPassword("secret-password")
	require.NoError(t, err)
	assert.NoError(t, hasher.ComparePasswordAndHash("secret-password", hash))
}

func TestRandomPasswordHash(t *testing.T) {
	hash := auth.RandomPasswordHash()
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, hash, auth.RandomPasswordHash())
}
