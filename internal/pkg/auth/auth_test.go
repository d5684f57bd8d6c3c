package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

func TestPortalTokenRoundTrip(t *testing.T) {
	svc := NewPortalTokenService("test-secret", "vidyalaya.app", time.Hour)

	token, err := svc.Generate(42, 7, "0007ST250003")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	studentID, claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), studentID)
	assert.Equal(t, int64(7), claims.InstitutionID)
	assert.Equal(t, "0007ST250003", claims.RollNo)
}

func TestPortalTokenExpired(t *testing.T) {
	svc := NewPortalTokenService("test-secret", "vidyalaya.app", -time.Minute)

	token, err := svc.Generate(42, 7, "0007ST250003")
	require.NoError(t, err)

	_, _, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestPortalTokenWrongSecret(t *testing.T) {
	issuing := NewPortalTokenService("secret-a", "vidyalaya.app", time.Hour)
	validating := NewPortalTokenService("secret-b", "vidyalaya.app", time.Hour)

	token, err := issuing.Generate(42, 7, "0007ST250003")
	require.NoError(t, err)

	_, _, err = validating.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPortalTokenWrongIssuer(t *testing.T) {
	issuing := NewPortalTokenService("test-secret", "other.example.com", time.Hour)
	validating := NewPortalTokenService("test-secret", "vidyalaya.app", time.Hour)

	token, err := issuing.Generate(42, 7, "0007ST250003")
	require.NoError(t, err)

	_, _, err = validating.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func signOwnerToken(t *testing.T, secret string, claims OwnerClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestOwnerVerify(t *testing.T) {
	v := NewOwnerVerifier("owner-secret", "accounts.vidyalaya.app")

	signed := signOwnerToken(t, "owner-secret", OwnerClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "accounts.vidyalaya.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.True(t, claims.IsAdmin)
}

func TestOwnerVerifyRejectsMissingSubject(t *testing.T) {
	v := NewOwnerVerifier("owner-secret", "accounts.vidyalaya.app")

	signed := signOwnerToken(t, "owner-secret", OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "accounts.vidyalaya.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := v.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestOwnerVerifyExpired(t *testing.T) {
	v := NewOwnerVerifier("owner-secret", "accounts.vidyalaya.app")

	signed := signOwnerToken(t, "owner-secret", OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "accounts.vidyalaya.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := v.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
