package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// OwnerClaims are the claims carried by tokens the external accounts
// provider issues for institution owners. The subject claim holds the
// platform user id.
type OwnerClaims struct {
	IsAdmin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// OwnerVerifier validates owner tokens. This service never issues them; it
// only shares the HS256 secret with the accounts provider.
type OwnerVerifier struct {
	secret []byte
	issuer string
}

// NewOwnerVerifier creates a verifier for owner tokens.
func NewOwnerVerifier(secret, issuer string) *OwnerVerifier {
	return &OwnerVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Verify parses and validates an owner token, returning its claims.
func (v *OwnerVerifier) Verify(tokenString string) (*OwnerClaims, error) {
	claims := &OwnerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}
