package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Controllers
// route every service error through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInstitutionNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Institution not found"),
		})
	case errors.Is(err, apperrors.ErrScopeNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Scope not found"),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found"),
		})
	case errors.Is(err, apperrors.ErrCounterNotFound),
		errors.Is(err, apperrors.ErrPlanNotFound),
		errors.Is(err, apperrors.ErrPlanTierNotFound),
		errors.Is(err, apperrors.ErrFeatureNotFound),
		errors.Is(err, apperrors.ErrCouponNotFound),
		errors.Is(err, apperrors.ErrPaymentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})
	case errors.Is(err, apperrors.ErrScopeTypeMismatch):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeScopeTypeMismatch, "Scope type does not match institution type"),
		})
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeCapacityExceeded, "Student capacity exceeded for current plan"),
		})
	case errors.Is(err, apperrors.ErrEmptyBatch):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeEmptyBatch, "No student records provided"),
		})
	case errors.Is(err, apperrors.ErrSlugAlreadyExists),
		errors.Is(err, apperrors.ErrRollNoExists),
		errors.Is(err, apperrors.ErrFeatureKeyExists),
		errors.Is(err, apperrors.ErrCouponCodeExists),
		errors.Is(err, apperrors.ErrCustomDomainInUse),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	case errors.Is(err, apperrors.ErrStorageFailure):
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage failure"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
