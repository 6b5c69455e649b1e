package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// SubscribeRequest is a newsletter sign-up.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,contains=.,min=3,max=254"`
}

// Normalize trims surrounding whitespace from the email address.
func (r *SubscribeRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Validate validates the SubscribeRequest using the validator.
func (r *SubscribeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
