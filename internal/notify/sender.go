package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrMissingAPIKey = errors.New("sendgrid api key is missing")

// Sender доставляет одно письмо. Реализация не должна ретраить.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridSender отправляет письма через SendGrid v3 mail send
type SendGridSender struct {
	apiKey string
	from   string
	client *sendgrid.Client
}

func NewSendGridSender(apiKey, from string) *SendGridSender {
	s := &SendGridSender{apiKey: apiKey, from: from}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	const op = "notify.SendGridSender.Send"

	if s.client == nil {
		return fmt.Errorf("%s: %w", op, ErrMissingAPIKey)
	}

	message := mail.NewSingleEmail(mail.NewEmail("", s.from), subject, mail.NewEmail("", to), "", htmlBody)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, resp.Body)
	}
	return nil
}
