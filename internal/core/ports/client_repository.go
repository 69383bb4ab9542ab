package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	// EmailTaken reports whether another client than excludeID uses email.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	List(ctx context.Context, q PageQuery) ([]*domain.Client, int64, error)
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id uint) error
}
