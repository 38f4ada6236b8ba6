package service

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":              true,
		"a.b+c@sub.domain.io": true,
		"padre@x.com":         true,
		"a@b":                 false,
		"":                    false,
		"a@b.c":               false,
		"a b@x.com":           false,
		"@x.com":              false,
		"ana@x.c0m":           false,
	}
	for input, want := range cases {
		assert.Equal(t, want, IsValidEmail(input), input)
	}
}

func TestValidateRequiredFieldsReportsFirstMissing(t *testing.T) {
	payload := map[string]string{
		"nombres":    "Ana",
		"apellidos":  "",
		"anoEscolar": "",
	}

	err := ValidateRequiredFields(validator.New(), payload, RequiredEnrollmentFields)

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "apellidos", missing.Field)
}

func TestValidateRequiredFieldsAcceptsCompletePayload(t *testing.T) {
	payload := map[string]string{
		"nombres":         "Ana",
		"apellidos":       "Lopez",
		"fechaNacimiento": "2015-03-01",
		"grado":           "3",
		"anoEscolar":      "2025",
		"direccion":       "Calle 1",
	}

	assert.NoError(t, ValidateRequiredFields(nil, payload, RequiredEnrollmentFields))
}
