package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/noah-isme/sma-enrollment-intake/internal/models"
	"github.com/noah-isme/sma-enrollment-intake/internal/templates"
	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
)

const (
	defaultAdminContact = "admisiones@colegio-xyz.edu.pe"
	missingValue        = "N/A"
)

// ConfirmationComposer renders the guardian confirmation email.
type ConfirmationComposer struct {
	tmpl         *template.Template
	school       string
	phone        string
	adminContact string
	loc          *time.Location
	now          func() time.Time
}

type confirmationView struct {
	models.Enrollment
	School       string
	AdminContact string
	Phone        string
	SentAt       string
}

// NewConfirmationComposer parses the embedded template. An empty admin
// contact falls back to the admissions mailbox.
func NewConfirmationComposer(school config.SchoolConfig, adminContact string) (*ConfirmationComposer, error) {
	tmpl, err := templates.Parse(template.FuncMap{"na": orNA}, templates.Confirmation)
	if err != nil {
		return nil, fmt.Errorf("parse confirmation template: %w", err)
	}
	if adminContact == "" {
		adminContact = defaultAdminContact
	}
	return &ConfirmationComposer{
		tmpl:         tmpl,
		school:       school.Name,
		phone:        school.Phone,
		adminContact: adminContact,
		loc:          school.Location(),
		now:          time.Now,
	}, nil
}

// Subject is the confirmation subject line for the record.
func (c *ConfirmationComposer) Subject(record *models.Enrollment) string {
	if record == nil {
		record = &models.Enrollment{}
	}
	return fmt.Sprintf("Confirmación de Inscripción - %s %s - %s", record.FirstNames, record.LastNames, c.school)
}

// Render produces the HTML body. Empty fields print N/A.
func (c *ConfirmationComposer) Render(record *models.Enrollment) (string, error) {
	view := confirmationView{
		School:       c.school,
		AdminContact: c.adminContact,
		Phone:        c.phone,
		SentAt:       formatSentAt(c.now().In(c.loc)),
	}
	if record != nil {
		view.Enrollment = *record
	}
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

func formatSentAt(t time.Time) string {
	return t.Format("02/01/2006") + " a las " + t.Format("15:04")
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingValue
	}
	return value
}
