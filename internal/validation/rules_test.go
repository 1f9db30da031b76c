package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/cardwatch/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("code", "must be valid"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must be valid")
}

func TestRules(t *testing.T) {
	tests := []struct {
		name      string
		rule      validation.Rule
		value     string
		shouldErr bool
	}{
		{"email valid", Email, "ops@example.com", false},
		{"email invalid", Email, "ops@", true},
		{"not blank valid", NotBlank, " x ", false},
		{"not blank invalid", NotBlank, "   ", true},
		{"digits valid", Digits, "411111", false},
		{"digits empty", Digits, "", false},
		{"digits invalid", Digits, "41a1", true},
		{"date valid", Date, "2026-11-20", false},
		{"date invalid", Date, "20/11/2026", true},
		{"date impossible", Date, "2026-02-30", true},
		{"currency upper", Currency, "USD", false},
		{"currency lower", Currency, "cad", false},
		{"currency invalid", Currency, "EUR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, tt.rule)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
