package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier sends account notifications through the SendGrid v3 API.
type SendGridNotifier struct {
	client sender
	from   *sgmail.Email
	logger zerolog.Logger
}

func NewSendGridNotifier(apiKey, fromAddress, fromName string, logger zerolog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromAddress),
		logger: logger,
	}
}

func (n *SendGridNotifier) NotifyAccountCreated(ctx context.Context, note domain.AccountNotification) error {
	msg := accountMessage(note)
	to := sgmail.NewEmail(note.Name, note.Email)
	email := sgmail.NewSingleEmail(n.from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := n.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}

	n.logger.Debug().Str("to", note.Email).Int("status", resp.StatusCode).Msg("account notification sent")
	return nil
}
