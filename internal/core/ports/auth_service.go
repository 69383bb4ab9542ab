package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

type AuthService interface {
	// Login checks the credentials of a client and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.Client, error)
}
