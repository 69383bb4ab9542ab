package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// TableDetails reads the write activity the triggers installed by Migrate record.
type TableDetails struct {
	db *gorm.DB
}

func NewTableDetails(db *gorm.DB) *TableDetails {
	return &TableDetails{db: db}
}

func (t *TableDetails) LastWrite(ctx context.Context, table string) (domain.TableActivity, error) {
	var m tableActivityModel
	err := t.db.WithContext(ctx).Where("table_name = ?", table).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TableActivity{Table: table}, nil
	}
	if err != nil {
		return domain.TableActivity{}, fmt.Errorf("read activity of %s: %w", table, err)
	}
	return domain.TableActivity{
		Table:       m.Name,
		LastWriteAt: m.LastWriteAt.UTC(),
		Revision:    m.Revision,
	}, nil
}
