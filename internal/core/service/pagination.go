package service

import (
	"context"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// Fetcher loads one page of rows and the total number of matching rows.
type Fetcher[T any] func(ctx context.Context, q ports.PageQuery) ([]T, int64, error)

// Paginate fetches the page described by req. Pages below 1 or past the last
// page come back empty with their metadata filled in.
func Paginate[T any](ctx context.Context, fetch Fetcher[T], route string, req domain.PageRequest, criteria domain.Criteria) (*domain.Page[T], error) {
	q := ports.PageQuery{Criteria: criteria, Offset: req.Offset(), Limit: req.Limit}
	if req.Page < 1 {
		q.Limit = 0
	}

	items, total, err := fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return &domain.Page[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, req.Limit),
		Route:      route,
	}, nil
}
