package ports

import "github.com/bilemo/bilemo-api/internal/core/domain"

// ListInput carries the parameters shared by every conditional list endpoint.
type ListInput struct {
	Principal domain.Principal
	Page      int
	Limit     int
	// IfNoneMatch is the raw If-None-Match header sent by the caller.
	IfNoneMatch string
}

// ListResult is either a fresh page or a not-modified marker. ETag is set in both cases.
type ListResult[T any] struct {
	NotModified bool
	ETag        string
	Page        *domain.Page[T]
}
