package handler

import (
	"net/http"

	"batepapo/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeNameTaken           = apierr.CodeNameTaken
	CodeParticipantNotFound = apierr.CodeParticipantNotFound
	CodeUnknownSender       = apierr.CodeUnknownSender
	CodeMessageNotFound     = apierr.CodeMessageNotFound
	CodeNotOwner            = apierr.CodeNotOwner
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewNotFoundError creates a message-not-found error
func NewNotFoundError() error {
	return apierr.NewNotFoundError()
}
