package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"batepapo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNameTaken           = "NAME_TAKEN"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodeUnknownSender       = "UNKNOWN_SENDER"
	CodeMessageNotFound     = "MESSAGE_NOT_FOUND"
	CodeNotOwner            = "NOT_MESSAGE_OWNER"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors; store failures stay opaque
	switch {
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, "Name must not be blank"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "This name is already in use"}}
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found"}}
	case errors.Is(err, model.ErrUnknownSender):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnknownSender, "Sender is not in the room"}}
	case errors.Is(err, model.ErrInvalidMessage):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, "Invalid message fields"}}
	case errors.Is(err, model.ErrMessageNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMessageNotFound, "Message not found"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotOwner, "Only the author may modify this message"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error (422)
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a message-not-found error. The delete endpoint
// reports a foreign message this way instead of revealing ownership.
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeMessageNotFound, "Message not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
