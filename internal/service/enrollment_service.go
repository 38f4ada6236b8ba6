package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-intake/internal/dto"
	"github.com/noah-isme/sma-enrollment-intake/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
)

// MaxListLimit caps the recent enrollments listing.
const MaxListLimit = 50

const (
	recentCacheKey     = "inscripciones:recent:%d"
	recentCachePattern = "inscripciones:recent:*"

	birthDateLayout     = "2006-01-02"
	displayDateLayout   = "02/01/2006"
	displayDateTimeFmt  = "02/01/2006 15:04:05"
	submissionAccepted  = "accepted"
	submissionInvalid   = "invalid"
	submissionFailed    = "failed"
	reasonNoNotifier    = "notifier_unavailable"
	reasonNoRecipients  = "no_valid_recipients"
	reasonUnexpectedErr = "unexpected_error"
)

type enrollmentRepository interface {
	Insert(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.EnrollmentSummary, error)
	Ping(ctx context.Context) error
}

// Notifier is the optional email capability. A nil Notifier means mail is
// not configured or not reachable.
type Notifier interface {
	SendBulk(ctx context.Context, recipients []string, subject, html string) DeliveryOutcome
}

type confirmationRenderer interface {
	Subject(record *models.Enrollment) string
	Render(record *models.Enrollment) (string, error)
}

// NotificationStatus classifies what happened after persistence.
type NotificationStatus string

// Notification statuses.
const (
	NotificationSent    NotificationStatus = "sent"
	NotificationSkipped NotificationStatus = "skipped"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationOutcome is Sent(delivery), Skipped(reason) or
// Failed(reason, delivery or err).
type NotificationOutcome struct {
	Status   NotificationStatus
	Reason   string
	Delivery *DeliveryOutcome
	Err      error
}

// SentCount is the number of confirmations that reached a recipient.
func (o NotificationOutcome) SentCount() int {
	if o.Delivery == nil {
		return 0
	}
	return o.Delivery.SentCount()
}

// EnrollmentService orchestrates the submission workflow:
// validate, persist, notify (best effort), respond.
type EnrollmentService struct {
	repo      enrollmentRepository
	notifier  Notifier
	composer  confirmationRenderer
	cache     *CacheService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	loc       *time.Location
}

// NewEnrollmentService constructs EnrollmentService. notifier and cache may
// be nil; loc is the timezone used for display dates.
func NewEnrollmentService(repo enrollmentRepository, notifier Notifier, composer confirmationRenderer, cache *CacheService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, loc *time.Location) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EnrollmentService{
		repo:      repo,
		notifier:  notifier,
		composer:  composer,
		cache:     cache,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		loc:       loc,
	}
}

// NotifierAvailable reports whether confirmations can be attempted.
func (s *EnrollmentService) NotifierAvailable() bool {
	return s.notifier != nil
}

// Submit runs the enrollment workflow. Only validation and persistence
// failures are returned as errors; notification problems are folded into the
// success message. The workflow ignores client cancellation once started.
func (s *EnrollmentService) Submit(ctx context.Context, req dto.EnrollmentRequest) (*dto.SubmissionResponse, error) {
	ctx = context.WithoutCancel(ctx)

	if err := ValidateRequiredFields(s.validator, req.Fields(), RequiredEnrollmentFields); err != nil {
		s.metrics.ObserveSubmission(submissionInvalid)
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			s.logger.Info("enrollment rejected", zap.String("missing_field", missing.Field))
			return nil, appErrors.MissingField(missing.Field)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	record := req.ToModel()
	recipients := guardianRecipients(record)
	s.logger.Info("processing enrollment",
		zap.String("nombres", record.FirstNames),
		zap.String("apellidos", record.LastNames),
		zap.Int("recipients", len(recipients)))

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		s.metrics.ObserveSubmission(submissionFailed)
		s.logger.Error("enrollment insert failed",
			zap.String("operation", "insert_enrollment"),
			zap.String("nombres", record.FirstNames),
			zap.String("apellidos", record.LastNames),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}
	s.logger.Info("enrollment saved", zap.Int64("inscripcion_id", id))
	s.cache.Invalidate(ctx, recentCachePattern)

	outcome := s.notify(ctx, record, recipients)
	s.metrics.ObserveNotification(outcome.Status)
	s.metrics.ObserveSubmission(submissionAccepted)

	return &dto.SubmissionResponse{
		Success:      true,
		Message:      submissionMessage(id, outcome),
		EnrollmentID: id,
		EmailsSent:   outcome.SentCount(),
	}, nil
}

func (s *EnrollmentService) notify(ctx context.Context, record *models.Enrollment, recipients []string) (outcome NotificationOutcome) {
	if s.notifier == nil {
		return NotificationOutcome{Status: NotificationSkipped, Reason: reasonNoNotifier}
	}
	if len(recipients) == 0 {
		return NotificationOutcome{Status: NotificationSkipped, Reason: reasonNoRecipients}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("notification panic: %v", r)
			s.logger.Error("confirmation emails failed", zap.Int64("inscripcion_id", record.ID), zap.Error(err))
			outcome = NotificationOutcome{Status: NotificationFailed, Reason: reasonUnexpectedErr, Err: err}
		}
	}()

	if s.composer == nil {
		return NotificationOutcome{Status: NotificationFailed, Reason: reasonUnexpectedErr, Err: errors.New("no confirmation composer")}
	}
	html, err := s.composer.Render(record)
	if err != nil {
		s.logger.Error("confirmation render failed", zap.Int64("inscripcion_id", record.ID), zap.Error(err))
		return NotificationOutcome{Status: NotificationFailed, Reason: reasonUnexpectedErr, Err: err}
	}

	delivery := s.notifier.SendBulk(ctx, recipients, s.composer.Subject(record), html)
	if delivery.SentCount() > 0 {
		return NotificationOutcome{Status: NotificationSent, Delivery: &delivery}
	}
	s.logger.Warn("no confirmation email delivered",
		zap.Int64("inscripcion_id", record.ID),
		zap.Int("errors", delivery.ErrorCount()))
	return NotificationOutcome{Status: NotificationFailed, Reason: "undelivered", Delivery: &delivery}
}

func submissionMessage(id int64, outcome NotificationOutcome) string {
	switch outcome.Status {
	case NotificationSent:
		return fmt.Sprintf("¡Inscripción registrada exitosamente! Se enviaron %d correos de confirmación.", outcome.SentCount())
	case NotificationFailed:
		if outcome.Err == nil {
			return fmt.Sprintf("Inscripción registrada (ID: %d) pero hubo problemas enviando los correos.", id)
		}
		return fmt.Sprintf("Inscripción registrada correctamente (ID: %d) pero no se pudieron enviar los correos.", id)
	}
	if outcome.Reason == reasonNoNotifier {
		return fmt.Sprintf("Inscripción registrada correctamente (ID: %d). Para recibir emails, configure el servicio de correo.", id)
	}
	return fmt.Sprintf("Inscripción registrada correctamente (ID: %d). No se proporcionaron emails válidos.", id)
}

// guardianRecipients returns the father's then the mother's email, keeping
// only syntactically valid addresses.
func guardianRecipients(record *models.Enrollment) []string {
	var recipients []string
	for _, email := range []string{record.FatherEmail, record.MotherEmail} {
		if IsValidEmail(email) {
			recipients = append(recipients, email)
		}
	}
	return recipients
}

// ListRecent returns up to 50 enrollments, newest first, with display dates.
func (s *EnrollmentService) ListRecent(ctx context.Context, limit int) ([]dto.EnrollmentListItem, error) {
	key := fmt.Sprintf(recentCacheKey, limit)
	var cached []dto.EnrollmentListItem
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.String("operation", "list_recent"), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error consultando inscripciones")
	}

	items := make([]dto.EnrollmentListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.EnrollmentListItem{
			ID:           row.ID,
			FirstNames:   row.FirstNames,
			LastNames:    row.LastNames,
			BirthDate:    formatBirthDate(row.BirthDate),
			GradeLevel:   row.GradeLevel,
			SchoolYear:   row.SchoolYear,
			FatherName:   row.FatherName,
			MotherName:   row.MotherName,
			FatherEmail:  row.FatherEmail,
			MotherEmail:  row.MotherEmail,
			RegisteredAt: formatRegisteredAt(row.RegisteredAt, s.loc),
		})
	}
	s.cache.Set(ctx, key, items)
	return items, nil
}

// CheckDatabase probes the store for /test_db and readiness.
func (s *EnrollmentService) CheckDatabase(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Error("database check failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error de conexión DB")
	}
	return nil
}

// formatBirthDate renders ISO dates as dd/mm/yyyy and leaves anything else
// untouched, since the column holds the submitted text.
func formatBirthDate(raw string) string {
	t, err := time.Parse(birthDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(displayDateLayout)
}

func formatRegisteredAt(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(displayDateTimeFmt)
}
