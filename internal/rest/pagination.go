package rest

import (
	"encoding/base64"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/foxfriends/woof/internal/domain"
)

// LimitOffsetPage is the list envelope for offset based requests.
type LimitOffsetPage[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// PageNumberPage is the default list envelope.
type PageNumberPage[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// CursorPage is the list envelope for forward-only cursor requests. Cursor is
// empty once the final page has been served.
type CursorPage[T any] struct {
	Items  []T    `json:"items"`
	Cursor string `json:"cursor"`
}

const cursorPrefix = "o:"

var errInvalidCursor = errors.New("malformed cursor")

// encodeCursor returns the opaque token that resumes a listing at offset.
func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// decodeCursor returns the offset carried by token. The empty token is offset 0.
func decodeCursor(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, errInvalidCursor
	}
	s, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, errInvalidCursor
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, errInvalidCursor
	}
	return offset, nil
}

// listPlan is the resolved window and envelope for one list request.
type listPlan struct {
	page   domain.PageRequest
	cursor bool
	offset bool
}

// planList picks the envelope and row window for f. A cursor wins; an offset
// without a page selects the limit/offset envelope; everything else pages by
// number. A page whose first row lies beyond math.MaxInt is rejected.
func planList(f Filter) (listPlan, error) {
	limit := f.Limit()
	if token, ok := f.Cursor(); ok {
		offset, err := decodeCursor(token)
		if err != nil {
			return listPlan{}, domain.NewAppError(domain.CodeValidation, "invalid cursor", err)
		}
		return listPlan{page: domain.PageRequest{Offset: offset, Limit: limit}, cursor: true}, nil
	}
	if p, ok := f.(paging); ok && p.HasOffset() && !p.HasPage() {
		return listPlan{page: domain.PageRequest{Offset: f.Offset(), Limit: limit}, offset: true}, nil
	}
	page := f.Page()
	if limit > 0 && page > (math.MaxInt-limit)/limit {
		return listPlan{}, domain.NewAppError(domain.CodeValidation, "page out of range", nil)
	}
	return listPlan{page: domain.PageRequest{Offset: page * limit, Limit: limit}}, nil
}

// envelope wraps one page of items the way plan requested.
func envelope[T any](plan listPlan, items []T, total int64) any {
	switch {
	case plan.cursor:
		next := ""
		if end := plan.page.Offset + len(items); len(items) > 0 && int64(end) < total {
			next = encodeCursor(end)
		}
		return CursorPage[T]{Items: items, Cursor: next}
	case plan.offset:
		return LimitOffsetPage[T]{Total: total, Items: items}
	default:
		return PageNumberPage[T]{Total: total, Items: items}
	}
}
