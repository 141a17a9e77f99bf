package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, claims, err := m.GenerateToken("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.TokenID())
	assert.Equal(t, "alice", claims.Subject)

	parsed, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.TokenID(), parsed.TokenID())
	assert.Equal(t, "alice", parsed.Subject)
	assert.InDelta(t, time.Hour.Seconds(), parsed.Remaining(time.Now()).Seconds(), 5)
}

func TestGenerateToken_DefaultSubject(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, claims, err := m.GenerateToken("")
	require.NoError(t, err)
	assert.Equal(t, "guest", claims.Subject)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, c1, err := m.GenerateToken("alice")
	require.NoError(t, err)
	_, c2, err := m.GenerateToken("alice")
	require.NoError(t, err)

	assert.NotEqual(t, c1.TokenID(), c2.TokenID())
}

func TestParseToken_Errors(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, _, err := m.GenerateToken("alice")
	require.NoError(t, err)

	t.Run("签名密钥不同", func(t *testing.T) {
		_, err := NewManager("other-secret", time.Hour).ParseToken(token)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("已过期", func(t *testing.T) {
		expired := NewManager("test-secret", time.Minute)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, _, err := expired.GenerateToken("alice")
		require.NoError(t, err)

		_, err = m.ParseToken(old)
		assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
	})
}

func TestClaimsRemaining(t *testing.T) {
	var c Claims
	assert.Zero(t, c.Remaining(time.Now()))
}
