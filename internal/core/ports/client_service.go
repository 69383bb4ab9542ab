package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// ClientInput is the submitted client document. Password may be empty on
// update, in which case the stored hash is kept. Role is honoured for admins only.
type ClientInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Get(ctx context.Context, p domain.Principal, id uint) (*domain.Client, error)
	List(ctx context.Context, in ListInput) (*ListResult[*domain.Client], error)
	Create(ctx context.Context, p domain.Principal, in ClientInput) (*domain.Client, error)
	Update(ctx context.Context, p domain.Principal, id uint, in ClientInput) (*domain.Client, error)
	// Delete removes the client together with every user it owns.
	Delete(ctx context.Context, p domain.Principal, id uint) error
	// EnsureAdmin creates the seed administrator unless an admin already exists.
	EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error)
}
