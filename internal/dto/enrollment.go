package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/noah-isme/sma-enrollment-intake/internal/models"
)

// Text accepts JSON strings, numbers and booleans so that form widgets
// posting `"grado": 3` are treated the same as `"grado": "3"`. Null decodes
// to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected a scalar value, got %s", data[:1])
	default:
		*t = Text(data)
	}
	return nil
}

// EnrollmentRequest is the form payload posted to /enviar_inscripcion.
// Unknown keys are ignored.
type EnrollmentRequest struct {
	FirstNames  Text `json:"nombres"`
	LastNames   Text `json:"apellidos"`
	BirthDate   Text `json:"fechaNacimiento"`
	GradeLevel  Text `json:"grado"`
	SchoolYear  Text `json:"anoEscolar"`
	FatherName  Text `json:"padreNombres"`
	MotherName  Text `json:"madreNombres"`
	FatherPhone Text `json:"padreTelefono"`
	MotherPhone Text `json:"madreTelefono"`
	FatherEmail Text `json:"emailPadre"`
	MotherEmail Text `json:"emailMadre"`
	Address     Text `json:"direccion"`
	Profession  Text `json:"profesion"`
}

// Fields exposes the payload keyed by its JSON names.
func (r EnrollmentRequest) Fields() map[string]string {
	return map[string]string{
		"nombres":         string(r.FirstNames),
		"apellidos":       string(r.LastNames),
		"fechaNacimiento": string(r.BirthDate),
		"grado":           string(r.GradeLevel),
		"anoEscolar":      string(r.SchoolYear),
		"padreNombres":    string(r.FatherName),
		"madreNombres":    string(r.MotherName),
		"padreTelefono":   string(r.FatherPhone),
		"madreTelefono":   string(r.MotherPhone),
		"emailPadre":      string(r.FatherEmail),
		"emailMadre":      string(r.MotherEmail),
		"direccion":       string(r.Address),
		"profesion":       string(r.Profession),
	}
}

// ToModel maps the payload onto a record ready for insertion. Guardian
// emails are stored trimmed; everything else is stored as submitted.
func (r EnrollmentRequest) ToModel() *models.Enrollment {
	return &models.Enrollment{
		FirstNames:  string(r.FirstNames),
		LastNames:   string(r.LastNames),
		BirthDate:   string(r.BirthDate),
		GradeLevel:  string(r.GradeLevel),
		SchoolYear:  string(r.SchoolYear),
		FatherName:  string(r.FatherName),
		MotherName:  string(r.MotherName),
		FatherPhone: string(r.FatherPhone),
		MotherPhone: string(r.MotherPhone),
		FatherEmail: strings.TrimSpace(string(r.FatherEmail)),
		MotherEmail: strings.TrimSpace(string(r.MotherEmail)),
		Address:     string(r.Address),
		Profession:  string(r.Profession),
	}
}

// SubmissionResponse is returned once the enrollment was persisted.
type SubmissionResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	EnrollmentID int64  `json:"inscripcion_id"`
	EmailsSent   int    `json:"correos_enviados"`
}

// EnrollmentListItem is a recent enrollment with display-formatted dates.
type EnrollmentListItem struct {
	ID           int64  `json:"id"`
	FirstNames   string `json:"nombres"`
	LastNames    string `json:"apellidos"`
	BirthDate    string `json:"fecha_nacimiento"`
	GradeLevel   string `json:"grado"`
	SchoolYear   string `json:"ano_escolar"`
	FatherName   string `json:"padre_nombres"`
	MotherName   string `json:"madre_nombres"`
	FatherEmail  string `json:"email_padre"`
	MotherEmail  string `json:"email_madre"`
	RegisteredAt string `json:"fecha_registro"`
}

// EnrollmentListResponse wraps /consultar_inscripciones output.
type EnrollmentListResponse struct {
	Success       bool                 `json:"success"`
	Inscripciones []EnrollmentListItem `json:"inscripciones"`
	Total         int                  `json:"total"`
}

// StatusResponse reports the result of an operational probe.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EmailStatusResponse reports the SMTP probe and the account in use.
type EmailStatusResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
}
