package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// UserInput is the submitted user document. ClientID selects the owner and is
// only accepted from admins; zero means the caller. Password may be empty on update.
type UserInput struct {
	Username string
	Email    string
	Password string
	Active   bool
	ClientID uint
}

// UserService defines use-case operations for users.
type UserService interface {
	Get(ctx context.Context, p domain.Principal, id uint) (*domain.User, error)
	// List is caller-scoped: admins see every user, clients only their own.
	List(ctx context.Context, in ListInput) (*ListResult[*domain.User], error)
	// ListAll is the admin-only global listing.
	ListAll(ctx context.Context, in ListInput) (*ListResult[*domain.User], error)
	// ListByClient lists the users of one client; the caller must be that client or an admin.
	ListByClient(ctx context.Context, in ListInput, clientID uint) (*ListResult[*domain.User], error)
	Create(ctx context.Context, p domain.Principal, in UserInput) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id uint, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id uint) error
}
