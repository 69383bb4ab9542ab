package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

const (
	tableClients = "clients"
	routeClients = "/api/admin/clients"
)

type ClientService struct {
	opts   Options
	lister lister[*domain.Client]
}

func NewClientService(opts Options, defaultLimit int) *ClientService {
	opts = opts.withDefaults()
	return &ClientService{
		opts: opts,
		lister: lister[*domain.Client]{
			table:        tableClients,
			defaultLimit: defaultLimit,
			fetch:        opts.Store.Clients().List,
			opts:         opts,
		},
	}
}

// Get returns the client when the caller is that client or an admin.
func (s *ClientService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.Client, error) {
	c, err := s.opts.Store.Clients().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(c.ID) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Client], error) {
	if !in.Principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.lister.list(ctx, in, routeClients, nil)
}

func (s *ClientService) Create(ctx context.Context, p domain.Principal, in ports.ClientInput) (*domain.Client, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := s.checkEmail(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.opts.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create client: hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	now := s.opts.Now()
	client := &domain.Client{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Clients().Create(ctx, client)
	})
	if err != nil {
		return nil, emailConflict(err, "create client")
	}

	s.opts.Logger.Info().Uint("client_id", client.ID).Str("role", client.Role).Msg("client created")
	s.opts.notify(ctx, domain.AccountNotification{
		Kind:     domain.RoleClient,
		Name:     client.Name,
		Email:    client.Email,
		Password: in.Password,
	})
	s.opts.audit(ctx, p, "create", tableClients, client.ID)

	return client, nil
}

// Update replaces the client document. An empty password keeps the stored
// hash; the role only changes when an admin submits one.
func (s *ClientService) Update(ctx context.Context, p domain.Principal, id uint, in ports.ClientInput) (*domain.Client, error) {
	client, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, in.Email, client.ID); err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	if in.Password != "" {
		hash, err := s.opts.hashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update client: hash password: %w", err)
		}
		client.PasswordHash = hash
	}
	if p.IsAdmin() && in.Role != "" {
		client.Role = in.Role
	}
	client.UpdatedAt = s.opts.Now()

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Clients().Update(ctx, client)
	})
	if err != nil {
		return nil, emailConflict(err, "update client")
	}

	s.opts.audit(ctx, p, "update", tableClients, client.ID)
	return client, nil
}

// Delete removes the client and, in the same transaction, every user it owns.
func (s *ClientService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	client, err := s.opts.Store.Clients().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}

	var removedUsers int64
	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		n, err := r.Users().DeleteByClient(ctx, client.ID)
		if err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		removedUsers = n
		return r.Clients().Delete(ctx, client.ID)
	})
	if err != nil {
		return fmt.Errorf("delete client %d: %w", client.ID, err)
	}

	s.opts.Logger.Info().Uint("client_id", client.ID).Int64("users_removed", removedUsers).Msg("client deleted")
	s.opts.audit(ctx, p, "delete", tableClients, client.ID)
	return nil
}

// EnsureAdmin creates the seed administrator when no admin account exists yet.
func (s *ClientService) EnsureAdmin(ctx context.Context, seed ports.AdminSeed) (bool, error) {
	if seed.Email == "" || seed.Password == "" {
		return false, domain.ErrInvalidCredentials
	}

	n, err := s.opts.Store.Clients().CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}
	system := domain.Principal{Role: domain.RoleAdmin, Email: "system"}
	if _, err := s.Create(ctx, system, ports.ClientInput{
		Name:     name,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ClientService) checkEmail(ctx context.Context, email string, excludeID uint) error {
	taken, err := s.opts.Store.Clients().EmailTaken(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("check client email: %w", err)
	}
	if taken {
		return domain.NewValidationError("email", domain.MsgAlreadyUsed)
	}
	return nil
}

// emailConflict turns a unique-index rejection into the same field error the
// pre-check produces.
func emailConflict(err error, op string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError("email", domain.MsgAlreadyUsed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
