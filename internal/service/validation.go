package service

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RequiredEnrollmentFields lists the payload keys checked before persistence,
// in reporting order.
var RequiredEnrollmentFields = []string{"nombres", "apellidos", "fechaNacimiento", "grado", "anoEscolar", "direccion"}

// MissingFieldError names the first required key that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// IsValidEmail is a purely syntactic check; no deliverability lookup.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// ValidateRequiredFields fails on the first key of requiredKeys whose value
// is absent or empty.
func ValidateRequiredFields(validate *validator.Validate, payload map[string]string, requiredKeys []string) error {
	if validate == nil {
		validate = validator.New()
	}
	for _, key := range requiredKeys {
		if err := validate.Var(payload[key], "required"); err != nil {
			return &MissingFieldError{Field: key}
		}
	}
	return nil
}
