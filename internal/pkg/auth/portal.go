package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// PortalClaims are the claims carried by student-portal tokens. The subject
// claim holds the student id.
type PortalClaims struct {
	InstitutionID int64  `json:"institutionId"`
	RollNo        string `json:"rollNo"`
	jwt.RegisteredClaims
}

// PortalTokenService issues and validates the session tokens students use
// after logging in with their roll number.
type PortalTokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewPortalTokenService creates a portal token service.
func NewPortalTokenService(secret, issuer string, expiration time.Duration) *PortalTokenService {
	return &PortalTokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

// Generate issues a signed portal token for a student.
func (s *PortalTokenService) Generate(studentID, institutionID int64, rollNo string) (string, error) {
	now := time.Now()
	claims := PortalClaims{
		InstitutionID: institutionID,
		RollNo:        rollNo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(studentID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a portal token and returns the student id together with
// the remaining claims.
func (s *PortalTokenService) Validate(tokenString string) (int64, *PortalClaims, error) {
	claims := &PortalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, nil, apperrors.ErrTokenExpired
		}
		return 0, nil, apperrors.ErrTokenInvalid
	}

	if !token.Valid {
		return 0, nil, apperrors.ErrTokenInvalid
	}

	studentID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, apperrors.ErrTokenInvalid
	}

	return studentID, claims, nil
}
