// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cardwatch/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Digits validates that a string holds only ASCII digits. Empty strings pass;
// combine with Required when needed.
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_digits", "must contain only digits"),
)

// Date validates a YYYY-MM-DD calendar date.
var Date = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	},
	validation.NewError("validation_date", "must be a date in YYYY-MM-DD format"),
)

// Currency validates a case-insensitive merchant currency code.
var Currency = validation.NewStringRuleWithError(
	func(s string) bool {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "USD", "CAD":
			return true
		default:
			return false
		}
	},
	validation.NewError("validation_currency", "must be one of USD, CAD"),
)
