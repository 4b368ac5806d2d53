// Package error defines domain-specific errors for the SmartBiz application.
package error

import "errors"

// Account and credential errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already registered")

	// ErrInvalidCredentials covers both an unknown identity and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidResetToken is returned when no pending reset matches the email and code.
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")

	ErrWeakPassword      = errors.New("password must be 8 to 72 bytes long")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrMissingIdentifier = errors.New("username or email is required")
)

// AuthErrorCode identifies an authentication failure in API responses.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Signup (01XXXX)
	ErrCodeUserExists    AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// Login (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Password reset (04XXXX)
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// AuthError is returned by the signup, login and password reset use cases.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}
