package email

import (
	"context"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// ResendClient delivers rendered email through the Resend API.
type ResendClient struct {
	emails resend.EmailsSvc
	from   string
}

// NewResendClient creates a client sending as "fromName <fromEmail>".
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		emails: resend.NewClient(apiKey).Emails,
		from:   address(fromName, fromEmail),
	}
}

// Send delivers one message. Failures come back as *domainerror.EmailError
// marked permanent or temporary.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{address(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifyDeliveryError(err)
	}
	return &adapter.SendEmailResult{MessageID: resp.Id}, nil
}

func address(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Rate limits, timeouts and 5xx responses are worth retrying. Rejected
// credentials or payloads are not.
var (
	retryableMarkers = []string{"429", "rate limit", "timeout", "500", "502", "503", "504"}
	rejectedMarkers  = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}
)

func classifyDeliveryError(err error) error {
	if isPermanentError(err) {
		return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "email rejected by provider", err)
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "email delivery failed", err)
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if containsAny(msg, retryableMarkers) {
		return false
	}
	return containsAny(msg, rejectedMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
