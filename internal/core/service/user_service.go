package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

const (
	tableUsers     = "users"
	routeUsers     = "/api/users"
	routeAdminUser = "/api/admin/users"
)

type UserService struct {
	opts   Options
	lister lister[*domain.User]
}

func NewUserService(opts Options, defaultLimit int) *UserService {
	opts = opts.withDefaults()
	return &UserService{
		opts: opts,
		lister: lister[*domain.User]{
			table:        tableUsers,
			defaultLimit: defaultLimit,
			fetch:        opts.Store.Users().List,
			opts:         opts,
		},
	}
}

// Get resolves the user first so a missing id reports not found even to a
// caller that could not have read it.
func (s *UserService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.User, error) {
	u, err := s.opts.Store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(u.ClientID) {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error) {
	if in.Principal.IsAdmin() {
		return s.lister.list(ctx, in, routeUsers, nil)
	}
	return s.lister.list(ctx, in, routeUsers, domain.Criteria{"client_id": in.Principal.ClientID})
}

func (s *UserService) ListAll(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error) {
	if !in.Principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.lister.list(ctx, in, routeAdminUser, nil)
}

func (s *UserService) ListByClient(ctx context.Context, in ports.ListInput, clientID uint) (*ports.ListResult[*domain.User], error) {
	if _, err := s.opts.Store.Clients().FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	if !in.Principal.CanAccess(clientID) {
		return nil, domain.ErrForbidden
	}
	route := fmt.Sprintf("/api/clients/%d/users", clientID)
	return s.lister.list(ctx, in, route, domain.Criteria{"client_id": clientID})
}

func (s *UserService) Create(ctx context.Context, p domain.Principal, in ports.UserInput) (*domain.User, error) {
	owner, err := s.resolveOwner(ctx, p, in.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, owner, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.opts.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := s.opts.Now()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Active:       in.Active,
		Role:         domain.RoleUser,
		ClientID:     owner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, emailConflict(err, "create user")
	}

	s.opts.Logger.Info().Uint("user_id", user.ID).Uint("client_id", owner).Msg("user created")
	s.opts.notify(ctx, domain.AccountNotification{
		Kind:     domain.RoleUser,
		Name:     user.Username,
		Email:    user.Email,
		Password: in.Password,
	})
	s.opts.audit(ctx, p, "create", tableUsers, user.ID)

	return user, nil
}

// Update replaces the user document. The owner never changes and an empty
// password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, p domain.Principal, id uint, in ports.UserInput) (*domain.User, error) {
	user, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, user.ClientID, in.Email, user.ID); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Active = in.Active
	if in.Password != "" {
		hash, err := s.opts.hashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.opts.Now()

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Users().Update(ctx, user)
	})
	if err != nil {
		return nil, emailConflict(err, "update user")
	}

	s.opts.audit(ctx, p, "update", tableUsers, user.ID)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	user, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Users().Delete(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", user.ID, err)
	}

	s.opts.audit(ctx, p, "delete", tableUsers, user.ID)
	return nil
}

// resolveOwner picks the client a new user belongs to. Only admins may
// register users on behalf of another client.
func (s *UserService) resolveOwner(ctx context.Context, p domain.Principal, requested uint) (uint, error) {
	if requested == 0 || requested == p.ClientID {
		if p.ClientID == 0 {
			return 0, domain.NewValidationError("client_id", domain.MsgNotBlank)
		}
		// tokens outlive their client; a deleted client must not own new users
		if _, err := s.opts.Store.Clients().FindByID(ctx, p.ClientID); err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				return 0, domain.ErrUnauthenticated
			}
			return 0, fmt.Errorf("resolve owner: %w", err)
		}
		return p.ClientID, nil
	}
	if !p.IsAdmin() {
		return 0, domain.ErrForbidden
	}
	if _, err := s.opts.Store.Clients().FindByID(ctx, requested); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return 0, domain.NewValidationError("client_id", domain.MsgInvalid)
		}
		return 0, fmt.Errorf("resolve owner: %w", err)
	}
	return requested, nil
}

func (s *UserService) checkEmail(ctx context.Context, clientID uint, email string, excludeID uint) error {
	taken, err := s.opts.Store.Users().EmailTaken(ctx, clientID, email, excludeID)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if taken {
		return domain.NewValidationError("email", domain.MsgAlreadyUsed)
	}
	return nil
}
