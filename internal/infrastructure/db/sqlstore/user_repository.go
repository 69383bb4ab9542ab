package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository using gorm.
type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, clientID uint, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("client_id = ? AND email = ? AND id <> ?", clientID, email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) List(ctx context.Context, q ports.PageQuery) ([]*domain.User, int64, error) {
	rows, total, err := findPage[userModel](ctx, r.db, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userFromDomain(u)
	if err := r.db.WithContext(ctx).Omit("Client").Create(&m).Error; err != nil {
		return translate(err, domain.ErrUserNotFound)
	}
	u.ID = m.ID
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := userFromDomain(u)
	res := r.db.WithContext(ctx).Model(&m).
		Select("username", "email", "password_hash", "active", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error, domain.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteByClient(ctx context.Context, clientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&userModel{})
	return res.RowsAffected, res.Error
}
