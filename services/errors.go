package services

import (
	"fmt"

	"candidate_application/i18n"
	"candidate_application/models"
)

// MinPhoneLength is the shortest accepted candidate_number.
const MinPhoneLength = 10

// PhoneTooShortError rejects a submission whose phone number is shorter than
// MinPhoneLength bytes.
type PhoneTooShortError struct {
	Length int
}

func (e *PhoneTooShortError) Error() string {
	return fmt.Sprintf("%s: length %d, want at least %d", models.FieldNumber, e.Length, MinPhoneLength)
}

// Field is the form field the error belongs to.
func (e *PhoneTooShortError) Field() string { return models.FieldNumber }

// MessageKey is the translation key of the user-facing message.
func (e *PhoneTooShortError) MessageKey() string { return i18n.MsgPhoneTooShort }
