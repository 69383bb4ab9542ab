package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// MobileRepository defines persistence operations for mobiles.
type MobileRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Mobile, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context, q PageQuery) ([]*domain.Mobile, int64, error)
	Create(ctx context.Context, m *domain.Mobile) error
	Update(ctx context.Context, m *domain.Mobile) error
	Delete(ctx context.Context, id uint) error
}
