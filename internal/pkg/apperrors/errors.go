package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")
)

// Institution errors
var (
	ErrInstitutionNotFound = errors.New("institution not found")
	ErrSlugAlreadyExists   = errors.New("institution slug already exists")
	ErrCustomDomainInUse   = errors.New("custom domain already in use")
)

// Enrollment errors
var (
	ErrScopeNotFound     = errors.New("scope not found")
	ErrScopeTypeMismatch = errors.New("scope type does not match institution type")
	ErrCapacityExceeded  = errors.New("student capacity exceeded for current plan")
	ErrEmptyBatch        = errors.New("no student records provided")
	ErrStudentNotFound   = errors.New("student not found")
	ErrRollNoExists      = errors.New("roll number already exists")
)

// Counter errors
var (
	ErrCounterNotFound = errors.New("counter not found")
)

// Catalog errors
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanTierNotFound = errors.New("plan tier not found")
	ErrFeatureNotFound  = errors.New("feature not found")
	ErrFeatureKeyExists = errors.New("feature key already exists")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponCodeExists = errors.New("coupon code already exists")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError wraps a sentinel error with a caller-supplied message so the
// message reaches the client while errors.Is still matches the sentinel.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
