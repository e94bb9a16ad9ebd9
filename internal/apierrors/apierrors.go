package apierrors

import (
	"net/http"
)

const (
	InternalServerErr = "INTERNAL_SERVER_ERROR"
	JSONDecodeErr     = "JSON_DECODE_ERROR"
	ValidationErr     = "VALIDATION_ERROR"
	UnauthorizedErr   = "UNAUTHORIZED"
	ForbiddenErr      = "FORBIDDEN"
	NotFoundErr       = "RESOURCE_NOT_FOUND"
	ConflictErr       = "UNIQUE_ERROR"
)

// DetailedError is the wire shape of an API error.
type DetailedError struct {
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Status    int     `json:"status"`
	RequestID *string `json:"requestId,omitempty"`
}

// ErrorMessage wraps DetailedError so the body reads {"error": {...}}.
type ErrorMessage struct {
	Error DetailedError `json:"error"`
}

func InternalServerErrorMessage() ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    InternalServerErr,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}}
}

func JSONDecodeErrorMessage() ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    JSONDecodeErr,
		Message: "Can't decode JSON body",
		Status:  http.StatusBadRequest,
	}}
}

func ValidationErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    ValidationErr,
		Message: message,
		Status:  http.StatusBadRequest,
	}}
}

func UnauthorizedErrorMessage() ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    UnauthorizedErr,
		Message: "Authentication required",
		Status:  http.StatusUnauthorized,
	}}
}

func ForbiddenErrorMessage() ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    ForbiddenErr,
		Message: "Not allowed",
		Status:  http.StatusForbidden,
	}}
}

func NotFoundErrorMessage() ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    NotFoundErr,
		Message: "Requested resource not found",
		Status:  http.StatusNotFound,
	}}
}

func ConflictErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Error: DetailedError{
		Code:    ConflictErr,
		Message: message,
		Status:  http.StatusConflict,
	}}
}
