package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherHash(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; production uses the configured cost.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hashes and verifies a password", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("Passw0rd!")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "Passw0rd!", hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected a bcrypt hash")

		assert.NoError(t, hasher.Compare(hash, "Passw0rd!"))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		t.Parallel()

		first, err := hasher.Hash("Passw0rd!")
		require.NoError(t, err)
		second, err := hasher.Hash("Passw0rd!")
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "bcrypt salts every hash")
	})

	t.Run("rejects empty password", func(t *testing.T) {
		t.Parallel()

		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestBcryptHasherCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare(hash, "wrong-password"))
	})

	t.Run("malformed hash fails without panicking", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "Passw0rd!"))
	})
}

func TestNewBcryptHasherDefaultCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	hash, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
