package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

func withCriteria(c domain.Criteria) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if len(c) == 0 {
			return tx
		}
		return tx.Where(map[string]interface{}(c))
	}
}

// findPage counts the rows matching q and loads the requested window in id
// order. The window query is skipped when it cannot return anything.
func findPage[M any](ctx context.Context, db *gorm.DB, q ports.PageQuery) ([]M, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(M)).Scopes(withCriteria(q.Criteria)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit <= 0 || q.Offset < 0 || int64(q.Offset) >= total {
		return nil, total, nil
	}

	var rows []M
	err := db.WithContext(ctx).
		Scopes(withCriteria(q.Criteria)).
		Order("id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
