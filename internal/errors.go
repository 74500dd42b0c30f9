package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInterval  ErrorCode = "INVALID_INTERVAL"
	ErrCodeRemarkRequired   ErrorCode = "REMARK_REQUIRED"

	ErrCodeClaimNotFound      ErrorCode = "CLAIM_NOT_FOUND"
	ErrCodeInvalidClaimStatus ErrorCode = "INVALID_CLAIM_STATUS"
	ErrCodeNotClaimOwner      ErrorCode = "NOT_CLAIM_OWNER"

	ErrCodeProjectNotFound    ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeDuplicateCode      ErrorCode = "DUPLICATE_PROJECT_CODE"
	ErrCodeManagerNotFound    ErrorCode = "PROJECT_MANAGER_NOT_FOUND"
	ErrCodeDuplicateRole      ErrorCode = "DUPLICATE_PROJECT_ROLE"
	ErrCodeEnrollmentNotFound ErrorCode = "ENROLLMENT_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeDuplicateEmail     ErrorCode = "DUPLICATE_EMAIL"

	ErrCodeUnauthorizedAccess ErrorCode = "UNAUTHORIZED_ACCESS"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrClaimNotFound      = NewNotFoundError("Claim not found", ErrCodeClaimNotFound)
	ErrClaimNotPending    = NewValidationError("Claim status must be Pending Approval", ErrCodeInvalidClaimStatus)
	ErrClaimNotDraft      = NewValidationError("Claim status must be Draft", ErrCodeInvalidClaimStatus)
	ErrClaimNotApproved   = NewValidationError("Claim status must be Approved", ErrCodeInvalidClaimStatus)
	ErrNotClaimOwner      = NewForbiddenError("Only the claim creator can perform this action", ErrCodeNotClaimOwner)
	ErrInvalidInterval    = NewValidationError("Each claim detail must have a positive duration", ErrCodeInvalidInterval)
	ErrRemarkRequired     = NewValidationError("Remark is required", ErrCodeRemarkRequired)
	ErrManagerNotFound    = NewNotFoundError("Project manager not found", ErrCodeManagerNotFound)
	ErrProjectNotFound    = NewNotFoundError("Project not found", ErrCodeProjectNotFound)
	ErrEnrollmentNotFound = NewNotFoundError("Enrollment not found", ErrCodeEnrollmentNotFound)
	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrNotAuthorized      = NewForbiddenError("not authorized", ErrCodeUnauthorizedAccess)

	ErrDuplicateProjectManager = NewConflictError("Project already has a project manager", ErrCodeDuplicateRole)
	ErrDuplicateQualityAssure  = NewConflictError("Project already has a quality assurance", ErrCodeDuplicateRole)
	ErrDuplicateProjectCode    = NewConflictError("Project code already exists", ErrCodeDuplicateCode)
	ErrDuplicateEmail          = NewConflictError("Email already registered", ErrCodeDuplicateEmail)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
