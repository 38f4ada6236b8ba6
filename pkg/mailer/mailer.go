// Package mailer wraps the SMTP transport used for guardian confirmations.
//
// A Dialer opens one authenticated Session; callers send any number of
// messages through it and Close it when the batch is done.
package mailer

import (
	"context"
	"fmt"
)

// Message is a single HTML email addressed to one recipient.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
}

// Recipient formats a name and address into RFC 5322 form.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Session is an open, authenticated connection to the mail server.
type Session interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Dialer opens sessions.
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}
