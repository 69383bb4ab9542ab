package ports

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// PageQuery selects one page of rows matching Criteria. A non-positive Limit
// only counts the matching rows.
type PageQuery struct {
	Criteria domain.Criteria
	Offset   int
	Limit    int
}

// Repositories groups the entity repositories bound to one database session.
type Repositories interface {
	Clients() ClientRepository
	Mobiles() MobileRepository
	Users() UserRepository
}

// Store is the entry point to persistence. Reads may use the embedded
// repositories directly; every mutation of a request runs inside Tx so that
// all of its writes are committed together or not at all.
type Store interface {
	Repositories
	Tx(ctx context.Context, fn func(r Repositories) error) error
}

// TableDetails exposes storage-side metadata about tables.
type TableDetails interface {
	// LastWrite returns the most recent write recorded for table. A table that
	// was never written yields a zero TableActivity and no error.
	LastWrite(ctx context.Context, table string) (domain.TableActivity, error)
}
