package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-intake/internal/dto"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/export"
)

// Export formats accepted by the roster download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var rosterColumns = []string{
	"ID", "Nombres", "Apellidos", "Fecha Nacimiento", "Grado", "Año Escolar",
	"Padre", "Madre", "Email Padre", "Email Madre", "Fecha Registro",
}

type recentEnrollmentLister interface {
	ListRecent(ctx context.Context, limit int) ([]dto.EnrollmentListItem, error)
}

type tableRenderer interface {
	ContentType() string
	Extension() string
	Render(t export.Table) ([]byte, error)
}

// ExportResult is a rendered roster ready to be streamed to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the recent enrollments roster as CSV or PDF.
type ExportService struct {
	enrollments recentEnrollmentLister
	renderers   map[string]tableRenderer
	school      string
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the package exporters.
func NewExportService(enrollments recentEnrollmentLister, school string, logger *zap.Logger, csv, pdf tableRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	renderers := map[string]tableRenderer{
		ExportFormatCSV: csv,
		ExportFormatPDF: pdf,
	}
	return &ExportService{
		enrollments: enrollments,
		renderers:   renderers,
		school:      school,
		logger:      logger,
		now:         time.Now,
	}
}

// Export renders the roster in the requested format. An empty format means CSV.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		err := appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Formato no soportado: %s", format))
		err.Field = "format"
		return nil, err
	}

	items, err := s.enrollments.ListRecent(ctx, MaxListLimit)
	if err != nil {
		return nil, err
	}

	payload, err := renderer.Render(s.buildTable(items))
	if err != nil {
		s.logger.Error("render roster failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("inscripciones_%s.%s", s.now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        payload,
	}, nil
}

func (s *ExportService) buildTable(items []dto.EnrollmentListItem) export.Table {
	title := "Inscripciones recientes"
	if s.school != "" {
		title = fmt.Sprintf("%s - %s", title, s.school)
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.FirstNames,
			item.LastNames,
			item.BirthDate,
			item.GradeLevel,
			item.SchoolYear,
			item.FatherName,
			item.MotherName,
			item.FatherEmail,
			item.MotherEmail,
			item.RegisteredAt,
		})
	}
	return export.Table{Title: title, Columns: rosterColumns, Rows: rows}
}
