package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulsight/haulsight/internal/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.haulsight.io",
		Audience:   "haulsight-api",
	})
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	svc := testJWTService()

	token, expiresAt, err := svc.GenerateAccessToken("usr_test123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_test123", claims.UserID)
	assert.Equal(t, "usr_test123", claims.Subject)
	assert.Equal(t, "https://api.haulsight.io", claims.Issuer)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := testJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-one",
		Issuer:     "https://api.haulsight.io",
		Audience:   "haulsight-api",
	})

	token, _, err := svc1.GenerateAccessToken("usr_test123")
	require.NoError(t, err)

	svc2 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "key-two",
		Issuer:     "https://api.haulsight.io",
		Audience:   "haulsight-api",
	})

	_, err = svc2.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}

func TestJWTService_WrongAudience(t *testing.T) {
	svc1 := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "shared-key",
		Issuer:     "https://api.haulsight.io",
		Audience:   "other-api",
	})

	token, _, err := svc1.GenerateAccessToken("usr_test123")
	require.NoError(t, err)

	_, err = testJWTService().ValidateAccessToken(token)
	assert.Error(t, err)
}
