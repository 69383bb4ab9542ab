package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// MobileRepository implements ports.MobileRepository using gorm.
type MobileRepository struct {
	db *gorm.DB
}

func (r *MobileRepository) FindByID(ctx context.Context, id uint) (*domain.Mobile, error) {
	var m mobileModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, domain.ErrMobileNotFound)
	}
	return m.toDomain(), nil
}

func (r *MobileRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&mobileModel{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *MobileRepository) List(ctx context.Context, q ports.PageQuery) ([]*domain.Mobile, int64, error) {
	rows, total, err := findPage[mobileModel](ctx, r.db, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Mobile, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *MobileRepository) Create(ctx context.Context, mobile *domain.Mobile) error {
	m := mobileFromDomain(mobile)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, domain.ErrMobileNotFound)
	}
	mobile.ID = m.ID
	return nil
}

func (r *MobileRepository) Update(ctx context.Context, mobile *domain.Mobile) error {
	m := mobileFromDomain(mobile)
	res := r.db.WithContext(ctx).Model(&m).
		Select("name", "price_cents", "description", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error, domain.ErrMobileNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMobileNotFound
	}
	return nil
}

func (r *MobileRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&mobileModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMobileNotFound
	}
	return nil
}
