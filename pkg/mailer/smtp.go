package mailer

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
)

// SMTPDialer connects with mandatory STARTTLS and PLAIN authentication.
type SMTPDialer struct {
	cfg config.MailConfig
}

// NewSMTPDialer builds a dialer from mail configuration.
func NewSMTPDialer(cfg config.MailConfig) *SMTPDialer {
	return &SMTPDialer{cfg: cfg}
}

func (d *SMTPDialer) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(d.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.cfg.Username),
		mail.WithPassword(d.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if d.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(d.cfg.Timeout))
	}
	return opts
}

// Dial opens a session. The returned error never contains the password.
func (d *SMTPDialer) Dial(ctx context.Context) (Session, error) {
	addr := net.JoinHostPort(d.cfg.Host, strconv.Itoa(d.cfg.Port))
	client, err := mail.NewClient(d.cfg.Host, d.options()...)
	if err != nil {
		return nil, fmt.Errorf("smtp client %s: %w", addr, err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	return &smtpSession{client: client}, nil
}

type smtpSession struct {
	client *mail.Client
}

func (s *smtpSession) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set recipient %s: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	if err := s.client.Send(m); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *smtpSession) Close() error {
	return s.client.Close()
}
