package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "alice", testSecret, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenWithoutTTLHasNoExpiry(t *testing.T) {
	token, err := GenerateToken(1, "alice", testSecret, 0)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestTokenWithTTLSetsExpiry(t *testing.T) {
	token, err := GenerateToken(1, "alice", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsUniformly(t *testing.T) {
	valid, err := GenerateToken(1, "alice", testSecret, 0)
	require.NoError(t, err)

	wrongSecret, err := GenerateToken(1, "alice", []byte("other-secret"), 0)
	require.NoError(t, err)

	// a token signed with "none" must never pass
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Username: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": wrongSecret,
		"tampered":     valid + "x",
		"alg none":     unsigned,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := ParseToken(token, testSecret)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateTokenRejectsInvalidUserID(t *testing.T) {
	_, err := GenerateToken(0, "alice", testSecret, 0)
	assert.Error(t, err)
}
