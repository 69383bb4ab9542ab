package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// MobileInput is the submitted mobile document. Price is already parsed.
type MobileInput struct {
	Name        string
	Price       domain.Price
	Description string
}

// MobileService defines use-case operations for the mobile catalogue.
type MobileService interface {
	Get(ctx context.Context, p domain.Principal, id uint) (*domain.Mobile, error)
	List(ctx context.Context, in ListInput) (*ListResult[*domain.Mobile], error)
	Create(ctx context.Context, p domain.Principal, in MobileInput) (*domain.Mobile, error)
	Update(ctx context.Context, p domain.Principal, id uint, in MobileInput) (*domain.Mobile, error)
	Delete(ctx context.Context, p domain.Principal, id uint) error
}
