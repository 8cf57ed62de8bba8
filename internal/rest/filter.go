package rest

import (
	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/pkg"
)

// Filter is decoded from the query string of a list request. Predicate must
// constrain only the fields the caller supplied.
type Filter interface {
	Limit() int
	Offset() int
	Page() int
	Cursor() (string, bool)
	Predicate() domain.Condition
}

// PageQuery carries the paging parameters shared by every list endpoint.
// Entity filters embed it and add their own fields and Predicate.
type PageQuery struct {
	LimitParam  *int    `form:"limit" binding:"omitempty,min=1,max=100"`
	OffsetParam *int    `form:"offset" binding:"omitempty,min=0"`
	PageParam   *int    `form:"page" binding:"omitempty,min=0"`
	CursorParam *string `form:"cursor"`
}

// Limit returns the requested page size, or pkg.DefaultLimit.
func (q PageQuery) Limit() int {
	if q.LimitParam == nil || *q.LimitParam < 1 {
		return pkg.DefaultLimit
	}
	return min(*q.LimitParam, pkg.MaxLimit)
}

// Offset returns the requested row offset, or 0.
func (q PageQuery) Offset() int {
	if q.OffsetParam == nil || *q.OffsetParam < 0 {
		return 0
	}
	return *q.OffsetParam
}

// Page returns the requested zero-based page number, or 0.
func (q PageQuery) Page() int {
	if q.PageParam == nil || *q.PageParam < 0 {
		return 0
	}
	return *q.PageParam
}

// Cursor returns the continuation token, if one was supplied. An empty token
// starts a cursor listing from the first row.
func (q PageQuery) Cursor() (string, bool) {
	if q.CursorParam == nil {
		return "", false
	}
	return *q.CursorParam, true
}

// HasOffset reports whether offset was supplied.
func (q PageQuery) HasOffset() bool { return q.OffsetParam != nil }

// HasPage reports whether page was supplied.
func (q PageQuery) HasPage() bool { return q.PageParam != nil }

// paging is implemented by filters that can tell a supplied zero apart from
// an absent parameter. PageQuery implements it.
type paging interface {
	HasOffset() bool
	HasPage() bool
}
