package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// ClientRepository implements ports.ClientRepository using gorm.
type ClientRepository struct {
	db *gorm.DB
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, domain.ErrClientNotFound)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translate(err, domain.ErrClientNotFound)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&clientModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *ClientRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&clientModel{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (r *ClientRepository) List(ctx context.Context, q ports.PageQuery) ([]*domain.Client, int64, error) {
	rows, total, err := findPage[clientModel](ctx, r.db, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Client, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	m := clientFromDomain(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, domain.ErrClientNotFound)
	}
	c.ID = m.ID
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	m := clientFromDomain(c)
	res := r.db.WithContext(ctx).Model(&m).
		Select("name", "email", "password_hash", "role", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error, domain.ErrClientNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&clientModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
