package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// LogNotifier only logs that a notification would have been sent. The
// password is never written to the log.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyAccountCreated(_ context.Context, note domain.AccountNotification) error {
	n.logger.Info().
		Str("kind", note.Kind).
		Str("to", note.Email).
		Str("subject", subject).
		Msg("account notification (log only)")
	return nil
}
