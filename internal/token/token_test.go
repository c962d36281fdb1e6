package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	tokenStr, err := issuer.Issue(42, "alice@example.com", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := issuer.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	tokenStr, err := issuer.Issue(1, "a@x.com", "a")
	require.NoError(t, err)

	claims, err := issuer.Verify(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issued := NewIssuer("secret-one", time.Hour)
	verifier := NewIssuer("secret-two", time.Hour)

	tokenStr, err := issued.Issue(1, "a@x.com", "a")
	require.NoError(t, err)

	claims, err := verifier.Verify(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	tokenStr, err := issuer.Issue(1, "a@x.com", "a")
	require.NoError(t, err)

	tampered := tokenStr[:len(tokenStr)-2] + "xx"
	claims, err := issuer.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	claims, err := issuer.Verify("not-a-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
