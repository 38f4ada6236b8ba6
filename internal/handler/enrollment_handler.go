package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-intake/internal/dto"
	"github.com/noah-isme/sma-enrollment-intake/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/response"
)

type enrollmentService interface {
	Submit(ctx context.Context, req dto.EnrollmentRequest) (*dto.SubmissionResponse, error)
	ListRecent(ctx context.Context, limit int) ([]dto.EnrollmentListItem, error)
}

type rosterExporter interface {
	Export(ctx context.Context, format string) (*service.ExportResult, error)
}

// EnrollmentHandler exposes the intake endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
	exports     rosterExporter
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService, exports rosterExporter) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, exports: exports}
}

// Submit godoc
// @Summary Submit an enrollment application
// @Description Persists the application and emails a confirmation to each guardian with a valid address.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.EnrollmentRequest true "Enrollment form"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /enviar_inscripcion [post]
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	var req dto.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message := "Datos JSON inválidos"
		if errors.Is(err, io.EOF) {
			message = "No se recibieron datos"
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return
	}
	result, err := h.enrollments.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// List godoc
// @Summary List recent enrollments
// @Description Returns up to 50 enrollments, newest first.
// @Tags Enrollments
// @Produce json
// @Success 200 {object} dto.EnrollmentListResponse
// @Failure 500 {object} response.Failure
// @Router /consultar_inscripciones [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	items, err := h.enrollments.ListRecent(c.Request.Context(), service.MaxListLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.EnrollmentListResponse{Success: true, Inscripciones: items, Total: len(items)})
}

// Export godoc
// @Summary Download the recent enrollments roster
// @Tags Enrollments
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Failure
// @Router /consultar_inscripciones/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	result, err := h.exports.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
