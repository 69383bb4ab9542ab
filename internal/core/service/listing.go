package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// lister serves conditional, access-scoped listings of one table.
type lister[T any] struct {
	table        string
	defaultLimit int
	fetch        Fetcher[T]
	opts         Options
}

// list implements the conditional listing flow: the validation token is
// derived from the table's last write and the caller, a matching
// If-None-Match short-circuits, otherwise the page is fetched.
func (l lister[T]) list(ctx context.Context, in ports.ListInput, route string, criteria domain.Criteria) (*ports.ListResult[T], error) {
	req := domain.NewPageRequest(in.Page, in.Limit, l.defaultLimit)

	activity, err := l.opts.Tables.LastWrite(ctx, l.table)
	if err != nil {
		return nil, fmt.Errorf("list %s: last write: %w", l.table, err)
	}

	etag := ValidationToken(activity, in.Principal.Email, route, req)
	if MatchesETag(in.IfNoneMatch, etag) {
		return &ports.ListResult[T]{NotModified: true, ETag: etag}, nil
	}

	key := "bilemo:page:" + etag
	if page, ok := l.cached(ctx, key); ok {
		return &ports.ListResult[T]{ETag: etag, Page: page}, nil
	}

	page, err := Paginate(ctx, l.fetch, route, req, criteria)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.table, err)
	}
	l.store(ctx, key, page)

	return &ports.ListResult[T]{ETag: etag, Page: page}, nil
}

func (l lister[T]) cached(ctx context.Context, key string) (*domain.Page[T], bool) {
	if l.opts.Cache == nil {
		return nil, false
	}
	raw, ok, err := l.opts.Cache.Get(ctx, key)
	if err != nil {
		l.opts.Logger.Warn().Err(err).Str("table", l.table).Msg("page cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var page domain.Page[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		l.opts.Logger.Warn().Err(err).Str("table", l.table).Msg("discarding undecodable cached page")
		return nil, false
	}
	return &page, true
}

func (l lister[T]) store(ctx context.Context, key string, page *domain.Page[T]) {
	if l.opts.Cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		l.opts.Logger.Warn().Err(err).Str("table", l.table).Msg("page not cacheable")
		return
	}
	if err := l.opts.Cache.Set(ctx, key, raw, l.opts.CacheTTL); err != nil {
		l.opts.Logger.Warn().Err(err).Str("table", l.table).Msg("page cache write failed")
	}
}

// ValidationToken hashes the table's last write together with the caller's
// identity and the requested page. Any write to the table changes it, even
// one the caller cannot see.
func ValidationToken(activity domain.TableActivity, email, route string, req domain.PageRequest) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%s|%s|%d|%d",
		activity.LastWriteAt.UTC().Format(time.RFC3339Nano),
		activity.Revision,
		email,
		route,
		req.Page,
		req.Limit,
	))
	return hex.EncodeToString(sum[:])
}

// MatchesETag reports whether an If-None-Match header value matches etag.
// Quoted, weak (W/) and comma-separated forms are accepted, as is "*".
func MatchesETag(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		c := strings.TrimSpace(candidate)
		if c == "*" {
			return true
		}
		c = strings.Trim(strings.TrimPrefix(c, "W/"), `"`)
		if c == etag {
			return true
		}
	}
	return false
}
