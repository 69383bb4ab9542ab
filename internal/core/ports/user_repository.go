package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	// EmailTaken reports whether clientID already registered email for a user other than excludeID.
	EmailTaken(ctx context.Context, clientID uint, email string, excludeID uint) (bool, error)
	List(ctx context.Context, q PageQuery) ([]*domain.User, int64, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
	// DeleteByClient removes every user owned by clientID and returns how many were removed.
	DeleteByClient(ctx context.Context, clientID uint) (int64, error)
}
