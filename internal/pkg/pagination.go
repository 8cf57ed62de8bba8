package pkg

import (
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foxfriends/woof/internal/domain"
)

const (
	// DefaultLimit is the page size used when a request does not name one.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Where returns a GORM scope that ANDs every constraint of cond onto the query,
// in order. Constraints with an invalid column name are skipped.
func Where(cond domain.Condition) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, eq := range cond {
			if !validFieldName.MatchString(eq.Column) {
				continue
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: eq.Column}, Value: eq.Value})
		}
		return db
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET from the page request.
// A non-positive limit falls back to DefaultLimit; limits above MaxLimit are clamped.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		limit := req.Limit
		if limit < 1 {
			limit = DefaultLimit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		offset := req.Offset
		if offset < 0 {
			offset = 0
		}
		return db.Offset(offset).Limit(limit)
	}
}

// OrderBy returns a GORM scope that sorts ascending by the given columns, in order.
// Paging over a stable order keeps pages from overlapping.
func OrderBy(columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, col := range columns {
			if !validFieldName.MatchString(col) {
				continue
			}
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}})
		}
		return db
	}
}
