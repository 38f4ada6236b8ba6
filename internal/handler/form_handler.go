package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-intake/internal/templates"
	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/response"
)

type formView struct {
	School     string
	SchoolYear string
}

// FormHandler serves the public enrollment form.
type FormHandler struct {
	tmpl   *template.Template
	school config.SchoolConfig
	now    func() time.Time
}

// NewFormHandler parses the embedded form page.
func NewFormHandler(school config.SchoolConfig) (*FormHandler, error) {
	tmpl, err := templates.Parse(nil, templates.Form)
	if err != nil {
		return nil, err
	}
	return &FormHandler{tmpl: tmpl, school: school, now: time.Now}, nil
}

// Index renders the form with the current school year prefilled.
func (h *FormHandler) Index(c *gin.Context) {
	view := formView{
		School:     h.school.Name,
		SchoolYear: strconv.Itoa(h.now().In(h.school.Location()).Year()),
	}
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
