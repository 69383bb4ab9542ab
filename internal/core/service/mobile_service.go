package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

const (
	tableMobiles = "mobiles"
	routeMobiles = "/api/mobiles"
)

// MobileService manages the product catalogue. Every authenticated client
// may read it; only admins write to it.
type MobileService struct {
	opts   Options
	lister lister[*domain.Mobile]
}

func NewMobileService(opts Options, defaultLimit int) *MobileService {
	opts = opts.withDefaults()
	return &MobileService{
		opts: opts,
		lister: lister[*domain.Mobile]{
			table:        tableMobiles,
			defaultLimit: defaultLimit,
			fetch:        opts.Store.Mobiles().List,
			opts:         opts,
		},
	}
}

func (s *MobileService) Get(ctx context.Context, _ domain.Principal, id uint) (*domain.Mobile, error) {
	return s.opts.Store.Mobiles().FindByID(ctx, id)
}

func (s *MobileService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Mobile], error) {
	return s.lister.list(ctx, in, routeMobiles, nil)
}

func (s *MobileService) Create(ctx context.Context, p domain.Principal, in ports.MobileInput) (*domain.Mobile, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := s.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	mobile := &domain.Mobile{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Mobiles().Create(ctx, mobile)
	})
	if err != nil {
		return nil, nameConflict(err, "create mobile")
	}

	s.opts.Logger.Info().Uint("mobile_id", mobile.ID).Str("price", mobile.Price.String()).Msg("mobile created")
	s.opts.audit(ctx, p, "create", tableMobiles, mobile.ID)
	return mobile, nil
}

func (s *MobileService) Update(ctx context.Context, p domain.Principal, id uint, in ports.MobileInput) (*domain.Mobile, error) {
	mobile, err := s.opts.Store.Mobiles().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := s.checkName(ctx, in.Name, mobile.ID); err != nil {
		return nil, err
	}

	mobile.Name = in.Name
	mobile.Price = in.Price
	mobile.Description = in.Description
	mobile.UpdatedAt = s.opts.Now()

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Mobiles().Update(ctx, mobile)
	})
	if err != nil {
		return nil, nameConflict(err, "update mobile")
	}

	s.opts.audit(ctx, p, "update", tableMobiles, mobile.ID)
	return mobile, nil
}

func (s *MobileService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	mobile, err := s.opts.Store.Mobiles().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}

	err = s.opts.Store.Tx(ctx, func(r ports.Repositories) error {
		return r.Mobiles().Delete(ctx, mobile.ID)
	})
	if err != nil {
		return fmt.Errorf("delete mobile %d: %w", mobile.ID, err)
	}

	s.opts.audit(ctx, p, "delete", tableMobiles, mobile.ID)
	return nil
}

func (s *MobileService) checkName(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.opts.Store.Mobiles().NameTaken(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check mobile name: %w", err)
	}
	if taken {
		return domain.NewValidationError("name", domain.MsgAlreadyUsed)
	}
	return nil
}

func nameConflict(err error, op string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError("name", domain.MsgAlreadyUsed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
