package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/mailer"
)

// DeliveryFailure records why one recipient did not receive the message.
type DeliveryFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// DeliveryOutcome is the per-batch result of SendBulk.
type DeliveryOutcome struct {
	Successes []string
	Failures  []DeliveryFailure
}

// SentCount is the number of recipients that accepted the message.
func (o DeliveryOutcome) SentCount() int { return len(o.Successes) }

// ErrorCount is the number of recipients that failed.
func (o DeliveryOutcome) ErrorCount() int { return len(o.Failures) }

// NotificationService delivers confirmation emails over one SMTP session per batch.
type NotificationService struct {
	dialer   mailer.Dialer
	username string
	fromName string
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewNotificationService constructs the sender. username is both the SMTP
// login and the From address.
func NewNotificationService(dialer mailer.Dialer, username, fromName string, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{dialer: dialer, username: username, fromName: fromName, metrics: metrics, logger: logger}
}

// NewNotifierFromConfig resolves the optional notification capability at
// startup. It returns a configuration error when credentials are missing or
// the account is not an email address, and ErrNotifierUnavailable when the
// startup probe cannot reach the server.
func NewNotifierFromConfig(ctx context.Context, cfg config.MailConfig, school config.SchoolConfig, metrics *MetricsService, logger *zap.Logger) (*NotificationService, error) {
	switch {
	case cfg.Username == "":
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "MAIL_USER requerido")
	case cfg.Password == "":
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "MAIL_PASS requerido")
	case !IsValidEmail(cfg.Username):
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "MAIL_USER debe ser un email válido")
	}
	svc := NewNotificationService(mailer.NewSMTPDialer(cfg), cfg.Username, school.Name, metrics, logger)
	if cfg.ProbeOnStart && !svc.TestConnection(ctx) {
		return nil, appErrors.Clone(appErrors.ErrNotifierUnavailable, "email configurado pero no se puede conectar")
	}
	return svc, nil
}

// Username is the configured mail account.
func (s *NotificationService) Username() string {
	return s.username
}

// TestConnection opens and closes a session. Failures are logged, not returned.
func (s *NotificationService) TestConnection(ctx context.Context) bool {
	session, err := s.dialer.Dial(ctx)
	if err != nil {
		s.logger.Error("smtp connection test failed", zap.String("username", s.username), zap.Error(err))
		return false
	}
	if err := session.Close(); err != nil {
		s.logger.Warn("smtp session close failed", zap.Error(err))
	}
	s.logger.Info("smtp connection ok", zap.String("username", s.username))
	return true
}

// SendBulk sends html to every syntactically valid recipient over a single
// session. A recipient failure never aborts the batch; a session that cannot
// be opened marks every valid recipient as failed.
func (s *NotificationService) SendBulk(ctx context.Context, recipients []string, subject, html string) DeliveryOutcome {
	valid := filterRecipients(recipients)
	outcome := DeliveryOutcome{Successes: []string{}, Failures: []DeliveryFailure{}}
	if len(valid) == 0 {
		return outcome
	}

	session, err := s.dialer.Dial(ctx)
	if err != nil {
		s.logger.Error("smtp session failed", zap.Int("recipients", len(valid)), zap.Error(err))
		for _, to := range valid {
			outcome.Failures = append(outcome.Failures, DeliveryFailure{Email: to, Error: err.Error()})
		}
		s.record(outcome)
		return outcome
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("smtp session close failed", zap.Error(err))
		}
	}()

	from := s.username
	for _, to := range valid {
		msg := mailer.Message{FromName: s.fromName, From: from, To: to, Subject: subject, HTML: html}
		if err := sendOne(ctx, session, msg); err != nil {
			s.logger.Error("confirmation email failed", zap.String("recipient", to), zap.Error(err))
			outcome.Failures = append(outcome.Failures, DeliveryFailure{Email: to, Error: err.Error()})
			continue
		}
		s.logger.Info("confirmation email sent", zap.String("recipient", to))
		outcome.Successes = append(outcome.Successes, to)
	}
	s.record(outcome)
	return outcome
}

// sendOne shields the batch from a panicking transport.
func sendOne(ctx context.Context, session mailer.Session, msg mailer.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("smtp send panicked")
		}
	}()
	return session.Send(ctx, msg)
}

func (s *NotificationService) record(outcome DeliveryOutcome) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveEmailDelivery(outcome.SentCount(), outcome.ErrorCount())
}

func filterRecipients(recipients []string) []string {
	valid := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if IsValidEmail(r) {
			valid = append(valid, r)
		}
	}
	return valid
}
