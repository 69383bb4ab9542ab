package ports

import (
	"context"
	"time"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// Notifier delivers the account-created message carrying the initial credentials.
type Notifier interface {
	NotifyAccountCreated(ctx context.Context, n domain.AccountNotification) error
}

// AuditRecorder persists the audit trail of mutations.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// PageCache stores serialized list pages. Keys embed the validation token,
// so entries never outlive the data they were computed from.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
