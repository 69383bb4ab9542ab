package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// Options carries the collaborators shared by the resource services.
// Cache, Audit and Notifier are optional.
type Options struct {
	Store      ports.Store
	Tables     ports.TableDetails
	Cache      ports.PageCache
	CacheTTL   time.Duration
	Audit      ports.AuditRecorder
	Notifier   ports.Notifier
	Logger     zerolog.Logger
	BcryptCost int
	Now        func() time.Time
}

func (o Options) withDefaults() Options {
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	if o.BcryptCost == 0 {
		o.BcryptCost = bcrypt.DefaultCost
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

func (o Options) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), o.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// audit records a committed mutation. Failures never undo the request.
func (o Options) audit(ctx context.Context, p domain.Principal, action, entity string, id uint) {
	if o.Audit == nil {
		return
	}
	entry := domain.AuditEntry{
		ActorID:  p.ClientID,
		Actor:    p.Email,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       o.Now(),
	}
	if err := o.Audit.Record(ctx, entry); err != nil {
		o.Logger.Warn().Err(err).Str("entity", entity).Uint("id", id).Str("action", action).Msg("failed to record audit entry")
	}
}

// notify sends the one-time account-created message after commit.
func (o Options) notify(ctx context.Context, n domain.AccountNotification) {
	if o.Notifier == nil {
		return
	}
	if err := o.Notifier.NotifyAccountCreated(ctx, n); err != nil {
		o.Logger.Warn().Err(err).Str("kind", n.Kind).Str("email", n.Email).Msg("failed to send account notification")
	}
}
