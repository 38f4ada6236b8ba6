package mailer

import (
	"context"
	"sync"
)

// MemoryDialer records messages instead of delivering them. DialErr fails
// every Dial; FailFor fails sends to the listed recipients.
type MemoryDialer struct {
	DialErr error
	FailFor map[string]error

	mu     sync.Mutex
	Outbox []Message
	Dials  int
	Closes int
}

// NewMemoryDialer returns an empty recording dialer.
func NewMemoryDialer() *MemoryDialer {
	return &MemoryDialer{FailFor: map[string]error{}}
}

// Dial implements Dialer.
func (d *MemoryDialer) Dial(context.Context) (Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Dials++
	if d.DialErr != nil {
		return nil, d.DialErr
	}
	return &memorySession{dialer: d}, nil
}

type memorySession struct {
	dialer *MemoryDialer
}

func (s *memorySession) Send(_ context.Context, msg Message) error {
	s.dialer.mu.Lock()
	defer s.dialer.mu.Unlock()
	if err := s.dialer.FailFor[msg.To]; err != nil {
		return err
	}
	s.dialer.Outbox = append(s.dialer.Outbox, msg)
	return nil
}

func (s *memorySession) Close() error {
	s.dialer.mu.Lock()
	defer s.dialer.mu.Unlock()
	s.dialer.Closes++
	return nil
}
