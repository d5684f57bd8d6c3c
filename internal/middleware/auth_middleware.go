package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/auth"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID    = "userID"
	ContextIsAdmin   = "isAdmin"
	ContextStudentID = "studentID"
)

// AuthMiddleware validates owner tokens from the accounts provider and
// portal tokens issued by this service.
type AuthMiddleware struct {
	owners  *auth.OwnerVerifier
	portals *auth.PortalTokenService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(owners *auth.OwnerVerifier, portals *auth.PortalTokenService) *AuthMiddleware {
	return &AuthMiddleware{
		owners:  owners,
		portals: portals,
	}
}

// RequireOwner validates the owner bearer token and stores the user id in
// the request context.
func (m *AuthMiddleware) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := m.owners.Verify(tokenString)
		if err != nil {
			abortWithTokenError(c, err)
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects owner tokens without the admin claim. Must run after
// RequireOwner.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdmin)
		if !exists || isAdmin != true {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("Admin privileges required for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// RequirePortalStudent validates a student portal token and stores the
// student id in the request context.
func (m *AuthMiddleware) RequirePortalStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		studentID, _, err := m.portals.Validate(tokenString)
		if err != nil {
			abortWithTokenError(c, err)
			return
		}

		c.Set(ContextStudentID, studentID)

		c.Next()
	}
}

// bearerToken extracts the bearer token from the Authorization header,
// aborting the request when it is missing.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		errorDetail = errorDetail.WithDetails("Authorization header missing")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", false
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}

	// Accept a raw JWT for Swagger UI convenience.
	if strings.Count(authHeader, ".") == 2 {
		return authHeader, true
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	errorDetail = errorDetail.WithDetails("Invalid token format")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	return "", false
}

func abortWithTokenError(c *gin.Context, err error) {
	errorCode := dto.ErrorCodeInvalidToken
	errorDetails := "Invalid token"
	if errors.Is(err, apperrors.ErrTokenExpired) {
		errorCode = dto.ErrorCodeExpiredToken
		errorDetails = "Token has expired"
	}

	errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
	errorDetail = errorDetail.WithDetails(errorDetails)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// OwnerID returns the authenticated owner user id from the context.
func OwnerID(c *gin.Context) string {
	userID, _ := c.Get(ContextUserID)
	id, _ := userID.(string)
	return id
}

// StudentID returns the authenticated portal student id from the context.
func StudentID(c *gin.Context) int64 {
	studentID, _ := c.Get(ContextStudentID)
	id, _ := studentID.(int64)
	return id
}
