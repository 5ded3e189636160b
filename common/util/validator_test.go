package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testForm struct {
	Name    string `validate:"required"`
	College string `validate:"max=10"`
	Email   string `validate:"omitempty,email"`
}

type testToggle struct {
	Enabled bool
	Path    string `validate:"required_if=Enabled true"`
}

type testLimit struct {
	Size int `validate:"min=1"`
}

// TestValidateStruct_ValidData tests validation with valid data
func TestValidateStruct_ValidData(t *testing.T) {
	form := testForm{Name: "Ada Lovelace", College: "Analytic", Email: "ada@example.com"}

	err := ValidateStruct(form)
	assert.NoError(t, err, "Valid struct should pass validation")
}

// TestValidateStruct_OptionalEmail tests that an empty optional email passes
func TestValidateStruct_OptionalEmail(t *testing.T) {
	err := ValidateStruct(testForm{Name: "Ada"})
	assert.NoError(t, err, "Empty optional email should pass")
}

func TestGetValidationErrors_Messages(t *testing.T) {
	testCases := []struct {
		name     string
		data     any
		expected string
	}{
		{"Required error", testForm{}, "Name is required"},
		{"Email error", testForm{Name: "Ada", Email: "not-an-email"}, "Email must be a valid email"},
		{"Max error", testForm{Name: "Ada", College: "Far too long a college"}, "College must be at most 10"},
		{"Required if error", testToggle{Enabled: true}, "Path is required when Enabled is set"},
		{"Min error", testLimit{Size: 0}, "Size must be at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.data)
			require.Error(t, err, "Should have validation error")

			messages := GetValidationErrors(err)
			assert.Contains(t, messages, tc.expected)
		})
	}
}

// TestValidateStruct_RequiredIfDisabled tests that disabled toggles skip their required fields
func TestValidateStruct_RequiredIfDisabled(t *testing.T) {
	err := ValidateStruct(testToggle{Enabled: false})
	assert.NoError(t, err)
}

// TestGetValidationErrors_NonValidationError tests non-validation error handling
func TestGetValidationErrors_NonValidationError(t *testing.T) {
	messages := GetValidationErrors(errors.New("boom"))
	assert.Empty(t, messages, "Non-validation errors should produce no messages")
}
