package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardwatch/internal/errors"
)

func TestTokenService_Generate(t *testing.T) {
	service, err := NewTokenService("")
	require.NoError(t, err)

	plain, hash, err := service.Generate()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(plain)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
	assert.Contains(t, hash, "$argon2id$")
	assert.False(t, service.Enabled())

	other, _, err := service.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, plain, other)
}

func TestTokenService_Verify(t *testing.T) {
	generator, err := NewTokenService("")
	require.NoError(t, err)
	plain, hash, err := generator.Generate()
	require.NoError(t, err)

	service, err := NewTokenService(hash)
	require.NoError(t, err)
	require.True(t, service.Enabled())

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, service.Verify(plain))
		// second call is served from the digest cache
		assert.NoError(t, service.Verify(plain))
	})

	t.Run("Error_WrongToken", func(t *testing.T) {
		assert.ErrorIs(t, service.Verify("wrong"), apperrors.ErrUnauthorized)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		assert.ErrorIs(t, service.Verify(""), apperrors.ErrUnauthorized)
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		broken, err := NewTokenService("not-a-phc-string")
		require.NoError(t, err)

		assert.ErrorIs(t, broken.Verify(plain), apperrors.ErrUnauthorized)
	})
}
