package jwtauth_test

import (
	"testing"
	"time"

	"ordertrack/internal/adapters/out/jwtauth"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	_, err := jwtauth.NewVerifier("  ")
	require.Error(t, err)
}

func TestVerifier_Verify_Success(t *testing.T) {
	verifier, err := jwtauth.NewVerifier(testSecret)
	require.NoError(t, err)

	subjectID := kernel.NewUUID()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":    subjectID.String(),
		"role":  "DRIVER",
		"email": "driver@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	act, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.True(t, act.ID().IsEqual(subjectID))
	assert.Equal(t, actor.RoleDriver, act.Role())
}

func TestVerifier_Verify_Failures(t *testing.T) {
	verifier, err := jwtauth.NewVerifier(testSecret)
	require.NoError(t, err)

	validID := kernel.NewUUID().String()
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not-a-token"},
		{
			"wrong secret",
			signToken(t, "other-secret", jwt.MapClaims{"id": validID, "role": "ADMIN", "exp": future}),
		},
		{
			"expired token",
			signToken(t, testSecret, jwt.MapClaims{
				"id": validID, "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"unknown role",
			signToken(t, testSecret, jwt.MapClaims{"id": validID, "role": "SUPERUSER", "exp": future}),
		},
		{
			"missing subject id",
			signToken(t, testSecret, jwt.MapClaims{"role": "ADMIN", "exp": future}),
		},
		{
			"malformed subject id",
			signToken(t, testSecret, jwt.MapClaims{"id": "12345", "role": "ADMIN", "exp": future}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			require.ErrorIs(t, err, ports.ErrUnauthenticated)
		})
	}
}

func TestVerifier_Verify_RejectsUnsignedToken(t *testing.T) {
	verifier, err := jwtauth.NewVerifier(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   kernel.NewUUID().String(),
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(unsigned)
	require.ErrorIs(t, err, ports.ErrUnauthenticated)
}
