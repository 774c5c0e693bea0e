package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("user-42", "secret", time.Minute)
	require.NoError(t, err)

	subject, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestParseTokenRejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := CreateToken("user-42", "secret", time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(token, "other")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := CreateToken("user-42", "secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(token, "secret")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not-a-token", "secret")
		assert.Error(t, err)
	})
}
