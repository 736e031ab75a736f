package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNameTaken           = errors.New("participant name already in use")
	ErrInvalidName         = errors.New("participant name must not be blank")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")
	ErrNotOwner        = errors.New("only the author may modify a message")
	ErrUnknownSender   = errors.New("sender is not an active participant")
	ErrInvalidMessage  = errors.New("invalid message fields")
)
