package error

import "errors"

// Email domain errors.
var (
	// ErrUnknownTemplate is returned when a queued job names a template that does not exist.
	ErrUnknownTemplate = errors.New("unknown email template")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Delivery errors (02XXXX)
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"

	// Template errors (03XXXX)
	ErrCodeUnknownTemplate EmailErrorCode = "EMAIL-030001"
)

// EmailError is raised by the email queue, renderer and senders.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Permanent reports whether retrying the delivery cannot succeed.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeUnknownTemplate
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailError reports whether err wraps a permanent EmailError.
func IsPermanentEmailError(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Permanent()
}
