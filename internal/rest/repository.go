package rest

import (
	"context"
	"errors"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/pkg"
)

// Store persists records of type M addressed by Key.
type Store[M any] interface {
	Find(ctx context.Context, key Key) (*M, error)
	// Delete removes the keyed record. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error
	// Insert creates a record from d and returns it as stored.
	Insert(ctx context.Context, d Diff) (*M, error)
	// Update applies d to the keyed record and returns it as stored.
	Update(ctx context.Context, key Key, d Diff) (*M, error)
	// Upsert inserts d, or overwrites the keyed record if it already exists.
	Upsert(ctx context.Context, key Key, d Diff) (*M, error)
	// Query returns one page of records matching cond, ordered by key, and the
	// number of records matching cond across all pages.
	Query(ctx context.Context, cond domain.Condition, page domain.PageRequest) ([]M, int64, error)
}

// repository implements Store using GORM.
type repository[M any] struct {
	db   *gorm.DB
	cols []KeyColumn
}

// NewRepository creates a Store for M backed by the given GORM database.
// cols must match the model's primary key columns.
func NewRepository[M any](db *gorm.DB, cols []KeyColumn) Store[M] {
	if db == nil {
		panic("rest: NewRepository requires a non-nil db")
	}
	if len(cols) == 0 {
		panic("rest: NewRepository requires at least one key column")
	}
	return &repository[M]{db: db, cols: cols}
}

// Find retrieves a record by its primary key.
func (r *repository[M]) Find(ctx context.Context, key Key) (*M, error) {
	m, err := find[M](r.db.WithContext(ctx), key)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

// Delete removes a record by its primary key.
func (r *repository[M]) Delete(ctx context.Context, key Key) error {
	err := r.db.WithContext(ctx).
		Scopes(pkg.Where(key.Condition())).
		Delete(new(M)).Error
	return mapError(err)
}

// Insert creates a record and reads it back by the key assigned in d.
func (r *repository[M]) Insert(ctx context.Context, d Diff) (*M, error) {
	key, err := keyFromDiff(r.cols, d)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "incomplete key", err)
	}

	var out *M
	err = pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(new(M)).Create(d.Map()).Error; err != nil {
			return err
		}
		var err error
		out, err = find[M](tx, key)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Update applies d to the keyed record. An absent record yields NotFound.
func (r *repository[M]) Update(ctx context.Context, key Key, d Diff) (*M, error) {
	var out *M
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if d.Len() > 0 {
			err := tx.Model(new(M)).
				Scopes(pkg.Where(key.Condition())).
				Updates(d.Map()).Error
			if err != nil {
				return err
			}
		}
		var err error
		out, err = find[M](tx, key)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Upsert inserts d or, when a record with the same key exists, overwrites its
// non-key columns.
func (r *repository[M]) Upsert(ctx context.Context, key Key, d Diff) (*M, error) {
	d = d.WithKey(key)
	keyNames := columnNames(r.cols)

	conflict := clause.OnConflict{}
	for _, name := range keyNames {
		conflict.Columns = append(conflict.Columns, clause.Column{Name: name})
	}
	var assign []string
	for _, col := range d.Columns() {
		if !slices.Contains(keyNames, col) {
			assign = append(assign, col)
		}
	}
	if len(assign) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(assign)
	}

	var out *M
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(new(M)).Clauses(conflict).Create(d.Map()).Error; err != nil {
			return err
		}
		var err error
		out, err = find[M](tx, key)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Query returns one page of records matching cond, ordered by the key columns.
func (r *repository[M]) Query(ctx context.Context, cond domain.Condition, page domain.PageRequest) ([]M, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(new(M)).Scopes(pkg.Where(cond))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	items := make([]M, 0)
	err := base().
		Scopes(pkg.OrderBy(columnNames(r.cols)...), pkg.Paginate(page)).
		Find(&items).Error
	if err != nil {
		return nil, 0, mapError(err)
	}
	return items, total, nil
}

func find[M any](db *gorm.DB, key Key) (*M, error) {
	var m M
	if err := db.Scopes(pkg.Where(key.Condition())).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyError(err) {
		return domain.NewAppError(domain.CodeInvalidReference, "invalid reference", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// isForeignKeyError is the foreign-key counterpart of isDuplicateKeyError.
func isForeignKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "violates foreign key")
}
