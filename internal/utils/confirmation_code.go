package utils

import "github.com/google/uuid"

// NewConfirmationCode returns the reference code handed to a registrant
// on successful admission.
func NewConfirmationCode() string {
	return uuid.NewString()
}
