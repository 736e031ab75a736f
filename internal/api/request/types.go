package request

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "required" alone accepts whitespace-only strings; the boundary must
	// reject them before they reach the core
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// JoinRequest is the request body for joining the room
type JoinRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

// SendMessageRequest is the request body for sending a message.
// The sender comes from the User header, not the body.
type SendMessageRequest struct {
	To   string `json:"to" validate:"required,notblank"`
	Text string `json:"text" validate:"required,notblank"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// UpdateMessageRequest is the request body for editing a message
type UpdateMessageRequest struct {
	To   string `json:"to" validate:"required,notblank"`
	Text string `json:"text" validate:"required,notblank"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// Validate checks a request struct against its validate tags
func Validate(req any) error {
	return validate.Struct(req)
}
