package response

import (
	"net/http"
	"time"
)

// Error codes carried in ErrorBody.ErrorCode.
const (
	CodeValidation       = "validation_error"
	CodePermission       = "permission_denied"
	CodeNotFound         = "not_found"
	CodeNotAuthenticated = "not_authenticated"
	CodeServer           = "server_error"
)

// Now is the clock used for envelope timestamps.
var Now = time.Now

// ErrorBody is the error part of an envelope.
type ErrorBody struct {
	ErrorCode      string              `json:"error_code"`
	FieldErrors    map[string][]string `json:"field_errors,omitempty"`
	NonFieldErrors []string            `json:"non_field_errors,omitempty"`
}

// Response represents a standard API response format
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     *ErrorBody  `json:"errors,omitempty"`
	Timestamp  string      `json:"timestamp"`
	StatusCode int         `json:"status_code"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return SuccessMessage(statusCode, "", data)
}

// SuccessMessage is Success with a human readable message.
func SuccessMessage(statusCode int, message string, data interface{}) Response {
	return Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  Now().UTC().Format(time.RFC3339),
		StatusCode: statusCode,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, message string) Response {
	return Response{
		Success:    false,
		Message:    message,
		Errors:     &ErrorBody{ErrorCode: codeFor(statusCode), NonFieldErrors: []string{message}},
		Timestamp:  Now().UTC().Format(time.RFC3339),
		StatusCode: statusCode,
	}
}

// Validation returns a 400 envelope carrying per-field messages.
func Validation(message string, fields map[string][]string) Response {
	res := Error(http.StatusBadRequest, message)
	res.Errors.FieldErrors = fields
	if message == "" {
		res.Errors.NonFieldErrors = nil
	}
	return res
}

func codeFor(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeNotAuthenticated
	case http.StatusForbidden:
		return CodePermission
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeServer
	}
}
