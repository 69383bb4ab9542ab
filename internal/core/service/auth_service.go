package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
	"github.com/bilemo/bilemo-api/internal/pkg/token"
)

// AuthService exchanges client credentials for a bearer token.
type AuthService struct {
	clients   ports.ClientRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(clients ports.ClientRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		clients:   clients,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Client, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		// unknown email and wrong password must look the same
		if errors.Is(err, domain.ErrClientNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Issue(s.jwtSecret, client.Principal(), s.tokenTTL, s.now())
	if err != nil {
		return "", nil, err
	}
	return signed, client, nil
}
