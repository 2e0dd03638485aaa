package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// General local@domain-with-dot shape; no whitespace or extra @ in either part
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Digits, spaces, dashes, parentheses and plus sign, 6-20 characters
	phoneRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]{6,20}$`)
)

// Field length ceilings, in characters
const (
	MaxEmailLen    = 255
	MaxNameLen     = 200
	MaxCompanyLen  = 200
	MaxServiceLen  = 100
	MaxLandSizeLen = 100
	MaxMessageLen  = 5000
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("submission_status", SubmissionStatus)
}

// IsEmail reports whether the value looks like a deliverable address.
func IsEmail(email string) bool {
	return emailRegex.MatchString(email) && utf8.RuneCountInString(email) <= MaxEmailLen
}

// IsPhone reports whether the value looks like a phone number.
func IsPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// WithinLimit reports whether an optional value fits the ceiling.
// Absent values always pass; use a presence check for required fields.
// Ceilings count characters, not bytes, so multibyte text is not
// penalized.
func WithinLimit(value string, maxLength int) bool {
	if value == "" {
		return true
	}
	return utf8.RuneCountInString(value) <= maxLength
}

// ValidPhone validates a phone number structure for gin binding tags
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return IsPhone(val)
}

// SubmissionStatus validates the three-state submission workflow value
func SubmissionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "negosiasi", "success":
		return true
	}
	return false
}
