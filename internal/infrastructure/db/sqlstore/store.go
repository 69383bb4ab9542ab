package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// Store implements ports.Store on a gorm session. Inside Tx the same type is
// bound to the transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Clients() ports.ClientRepository { return &ClientRepository{db: s.db} }
func (s *Store) Mobiles() ports.MobileRepository { return &MobileRepository{db: s.db} }
func (s *Store) Users() ports.UserRepository     { return &UserRepository{db: s.db} }

// Tx runs fn in a database transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *Store) Tx(ctx context.Context, fn func(r ports.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps driver errors onto domain errors.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	default:
		return err
	}
}
