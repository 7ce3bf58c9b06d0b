package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("a perfectly fine password")
	require.NoError(t, err)
	assert.NotEqual(t, "a perfectly fine password", hash)

	require.NoError(t, VerifyPassword("a perfectly fine password", hash))

	err = VerifyPassword("the wrong password", hash)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
