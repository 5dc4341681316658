// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/platform/sec"
)

func newTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("unit-test-secret", "inkwell.app", ttl)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_IssueAndVerify checks the issue/verify round trip and the
claims carried inside the token.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := newTokenService(t, 24*time.Hour)

	token, err := service.Issue("user-123", "inkreader", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "inkreader", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "inkwell.app", claims.Issuer)

	// Expiry lands ~24h out
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_Expired verifies that a token past its TTL is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t, -time.Minute)

	token, err := service.Issue("user-123", "inkreader", "user")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret confirms that tokens signed by another secret do
not verify.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTokenService(t, time.Hour)

	other, err := sec.NewTokenService("a-different-secret", "inkwell.app", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-123", "inkreader", "user")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsUnsignedToken guards against the classic alg=none
downgrade: a token that skips HMAC signing must never verify.
*/
func TestTokenService_RejectsUnsignedToken(t *testing.T) {
	service := newTokenService(t, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, sec.AuthClaims{
		UserID: "user-123",
		Role:   "admin",
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage checks that malformed strings fail cleanly.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTokenService(t, time.Hour)

	for _, input := range []string{"", "not.a.jwt", "AAAA.BBBB.CCCC"} {
		_, err := service.Verify(input)
		assert.Error(t, err)
	}
}

/*
TestNewTokenService_EmptySecret ensures the constructor refuses to run
without a signing secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "inkwell.app", time.Hour)
	assert.Error(t, err)
}
