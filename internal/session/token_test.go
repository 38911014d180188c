package session

import (
	"testing"
	"time"

	"github.com/careerhub/frontdesk/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token := signed(t, jwt.MapClaims{"sub": "u42", "role": "Company", "exp": exp.Unix()})

	claims, err := TokenClaims(token)

	require.NoError(t, err)
	assert.Equal(t, "u42", claims.Subject)
	assert.Equal(t, types.RoleCompany, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(exp.Add(-time.Hour)))
	assert.True(t, claims.Expired(exp.Add(time.Hour)))
}

func TestTokenClaimsFallsBackToID(t *testing.T) {
	claims, err := TokenClaims(signed(t, jwt.MapClaims{"id": "abc", "role": "wizard"}))

	require.NoError(t, err)
	assert.Equal(t, "abc", claims.Subject)
	assert.Equal(t, types.Role(""), claims.Role)
	assert.False(t, claims.Expired(time.Now()))
}

func TestTokenClaimsRejectsGarbage(t *testing.T) {
	_, err := TokenClaims("")
	assert.Error(t, err)

	_, err = TokenClaims("not.a.jwt")
	assert.Error(t, err)
}
