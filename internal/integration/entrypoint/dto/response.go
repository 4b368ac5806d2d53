// Package dto defines data transfer objects for API requests and responses.
package dto

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope of every API response.
// Failures carry a machine readable Code.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success builds a success envelope.
func Success(message string, data any) Response {
	return Response{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error envelope.
func Failure(message, code string) Response {
	return Response{Status: StatusError, Message: message, Code: code}
}
