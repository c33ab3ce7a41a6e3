package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-for-jwt-service")

func newTestService() *JWTService {
	return NewJWTService(testSecret, 15*time.Minute, 24*time.Hour)
}

func TestParse_RoundTripPreservesSubjectAndRoles(t *testing.T) {
	jwtService := newTestService()

	roles := []string{"ROLE_USER", "ROLE_ADMIN"}
	token, err := jwtService.GenerateAccessToken("user-1", roles)
	require.NoError(t, err)

	claims, err := jwtService.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, roles, claims.Roles)
	assert.Empty(t, claims.TokenType)
}

func TestParse_RefreshTokenCarriesTypeMarker(t *testing.T) {
	jwtService := newTestService()

	token, err := jwtService.GenerateRefreshToken("user-1", []string{"ROLE_USER"})
	require.NoError(t, err)

	claims, err := jwtService.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestParse_ExpiredBeyondSkewFails(t *testing.T) {
	// Negative TTL puts exp two minutes in the past, outside the 60s leeway.
	jwtService := NewJWTService(testSecret, -2*time.Minute, 24*time.Hour)

	token, err := jwtService.GenerateAccessToken("user-1", nil)
	require.NoError(t, err)

	_, err = jwtService.Parse(token)
	assert.Error(t, err)
}

func TestParse_ExpiredWithinSkewSucceeds(t *testing.T) {
	// exp thirty seconds in the past is still inside the leeway window.
	jwtService := NewJWTService(testSecret, -30*time.Second, 24*time.Hour)

	token, err := jwtService.GenerateAccessToken("user-1", nil)
	require.NoError(t, err)

	_, err = jwtService.Parse(token)
	assert.NoError(t, err)
}

func TestParse_WrongSecretFails(t *testing.T) {
	jwtService := newTestService()

	token, err := jwtService.GenerateAccessToken("user-1", nil)
	require.NoError(t, err)

	other := NewJWTService([]byte("a-different-secret"), 15*time.Minute, 24*time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParse_TamperedTokenFails(t *testing.T) {
	jwtService := newTestService()

	token, err := jwtService.GenerateAccessToken("user-1", []string{"ROLE_USER"})
	require.NoError(t, err)

	tampered := []byte(token)
	middle := len(tampered) / 2
	if tampered[middle] == 'a' {
		tampered[middle] = 'b'
	} else {
		tampered[middle] = 'a'
	}

	_, err = jwtService.Parse(string(tampered))
	assert.Error(t, err)
}

func TestParse_MalformedTokenFails(t *testing.T) {
	jwtService := newTestService()

	_, err := jwtService.Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	jwtService := newTestService()

	refreshToken, err := jwtService.GenerateRefreshToken("user-1", []string{"ROLE_USER"})
	require.NoError(t, err)

	assert.False(t, jwtService.ValidateAccessToken(refreshToken))
	assert.True(t, jwtService.ValidateRefreshToken(refreshToken))
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	jwtService := newTestService()

	accessToken, err := jwtService.GenerateAccessToken("user-1", []string{"ROLE_USER"})
	require.NoError(t, err)

	assert.True(t, jwtService.ValidateAccessToken(accessToken))
	assert.False(t, jwtService.ValidateRefreshToken(accessToken))
}

func TestRoles_NeverNil(t *testing.T) {
	jwtService := newTestService()

	assert.NotNil(t, jwtService.Roles("garbage"))
	assert.Empty(t, jwtService.Roles("garbage"))

	token, err := jwtService.GenerateAccessToken("user-1", nil)
	require.NoError(t, err)
	assert.NotNil(t, jwtService.Roles(token))
}

func TestSubject_EmptyOnParseFailure(t *testing.T) {
	jwtService := newTestService()

	assert.Equal(t, "", jwtService.Subject("garbage"))

	token, err := jwtService.GenerateAccessToken("user-42", nil)
	require.NoError(t, err)
	assert.Equal(t, "user-42", jwtService.Subject(token))
}

func TestParse_RejectsForeignAlgorithm(t *testing.T) {
	jwtService := newTestService()

	// Unsigned token with alg "none" must never parse.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJzdWIiOiJ1c2VyLTEifQ."
	_, err := jwtService.Parse(unsigned)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid token"))
}
