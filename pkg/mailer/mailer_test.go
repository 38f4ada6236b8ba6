package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
)

func TestRecipient(t *testing.T) {
	assert.Equal(t, "a@b.co", Recipient("", "a@b.co"))
	assert.Equal(t, "Colegio XYZ <a@b.co>", Recipient("Colegio XYZ", "a@b.co"))
}

func TestMemoryDialerRecordsAndFails(t *testing.T) {
	d := NewMemoryDialer()
	d.FailFor["bad@x.com"] = errors.New("mailbox unavailable")

	session, err := d.Dial(context.Background())
	require.NoError(t, err)
	assert.NoError(t, session.Send(context.Background(), Message{To: "ok@x.com"}))
	assert.Error(t, session.Send(context.Background(), Message{To: "bad@x.com"}))
	require.NoError(t, session.Close())

	assert.Len(t, d.Outbox, 1)
	assert.Equal(t, 1, d.Dials)
	assert.Equal(t, 1, d.Closes)
}

func TestSMTPDialerOptionsSkipZeroTimeout(t *testing.T) {
	base := config.MailConfig{Host: "smtp.example.com", Port: 587, Username: "u@example.com", Password: "p"}

	assert.Len(t, NewSMTPDialer(base).options(), 5)

	base.Timeout = 5 * time.Second
	assert.Len(t, NewSMTPDialer(base).options(), 6)
}
