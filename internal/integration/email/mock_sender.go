package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// MockEmailSender records outgoing email instead of delivering it.
// It is used when no Resend API key is configured and by tests.
type MockEmailSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send implements adapter.EmailSender.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		code, msg := domainerror.ErrCodeTemporaryEmailFailure, "mock temporary failure"
		if m.isPermanent {
			code, msg = domainerror.ErrCodePermanentEmailFailure, "mock permanent failure"
		}
		return nil, domainerror.NewEmailError(code, msg, m.failErr)
	}

	m.sent = append(m.sent, input)
	slog.Info("Email captured without delivery", "subject", input.Subject, "count", len(m.sent))
	return &adapter.SendEmailResult{MessageID: fmt.Sprintf("mock-%d", len(m.sent))}, nil
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastTo returns the most recent email sent to the address.
func (m *MockEmailSender) LastTo(address string) (adapter.SendEmailInput, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == address {
			return m.sent[i], true
		}
	}
	return adapter.SendEmailInput{}, false
}

// SetFailure makes subsequent sends fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// Reset clears recorded emails and any configured failure.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var _ adapter.EmailSender = (*MockEmailSender)(nil)
