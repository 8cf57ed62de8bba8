package pkg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB returns a gorm handle over go-sqlmock. Expectations are checked
// when the test ends.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func TestWithTx_Outcomes(t *testing.T) {
	fnErr := errors.New("fn failed")
	beginErr := errors.New("begin failed")
	commitErr := errors.New("commit failed")

	tests := []struct {
		name    string
		expect  func(m sqlmock.Sqlmock)
		ret     error
		wantErr error
		wantRun bool
	}{
		{
			name:    "commit on success",
			expect:  func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectCommit() },
			wantRun: true,
		},
		{
			name:    "rollback on error",
			expect:  func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectRollback() },
			ret:     fnErr,
			wantErr: fnErr,
			wantRun: true,
		},
		{
			name:    "begin failure skips fn",
			expect:  func(m sqlmock.Sqlmock) { m.ExpectBegin().WillReturnError(beginErr) },
			wantErr: beginErr,
		},
		{
			name:    "commit failure is returned",
			expect:  func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectCommit().WillReturnError(commitErr) },
			wantErr: commitErr,
			wantRun: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)

			ran := false
			err := WithTx(context.Background(), db, func(*gorm.DB) error {
				ran = true
				return tt.ret
			})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WithTx() error = %v, want %v", err, tt.wantErr)
			}
			if ran != tt.wantRun {
				t.Errorf("fn ran = %v, want %v", ran, tt.wantRun)
			}
		})
	}
}

func TestWithTx_RollbackAndRepanic(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v, want re-raised panic 'boom'", r)
		}
	}()

	_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		panic("boom")
	})
}

// --- SQLite integration tests ---

// testItem is a small keyed row for integration tests.
type testItem struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

// newTxTestDB creates a SQLite in-memory *gorm.DB and auto-migrates testItem.
func newTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps every statement on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&testItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func countItems(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&testItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestWithTx_SQLite(t *testing.T) {
	fnErr := errors.New("something went wrong")
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		ret       error
		wantErr   bool
		wantCount int64
	}{
		{"commit persists", context.Background(), nil, false, 1},
		{"error rolls back", context.Background(), fnErr, true, 0},
		{"canceled context never begins", canceled, nil, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTxTestDB(t)

			err := WithTx(tt.ctx, db, func(tx *gorm.DB) error {
				if err := tx.Create(&testItem{ID: "a", Name: "alice"}).Error; err != nil {
					return err
				}
				return tt.ret
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("WithTx() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.ret != nil && !errors.Is(err, tt.ret) {
				t.Fatalf("WithTx() error = %v, want %v", err, tt.ret)
			}
			if got := countItems(t, db); got != tt.wantCount {
				t.Fatalf("rows = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestWithTx_SQLite_RollbackOnPanic(t *testing.T) {
	db := newTxTestDB(t)

	defer func() {
		if r := recover(); r != "kaboom" {
			t.Fatalf("recovered %v, want re-raised panic 'kaboom'", r)
		}
		if got := countItems(t, db); got != 0 {
			t.Fatalf("rows = %d after panic, want 0", got)
		}
	}()

	_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&testItem{ID: "c", Name: "charlie"}).Error; err != nil {
			t.Fatalf("insert should succeed: %v", err)
		}
		panic("kaboom")
	})
}

func TestWithTx_SQLite_NestedUsesSavepoint(t *testing.T) {
	db := newTxTestDB(t)
	innerErr := errors.New("inner failed")

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&testItem{ID: "outer", Name: "kept"}).Error; err != nil {
			return err
		}
		err := WithTx(context.Background(), tx, func(inner *gorm.DB) error {
			if err := inner.Create(&testItem{ID: "inner", Name: "dropped"}).Error; err != nil {
				return err
			}
			return innerErr
		})
		if !errors.Is(err, innerErr) {
			t.Errorf("inner WithTx() error = %v, want %v", err, innerErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("outer WithTx() error = %v", err)
	}

	var ids []string
	if err := db.Model(&testItem{}).Pluck("id", &ids).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(ids) != 1 || ids[0] != "outer" {
		t.Fatalf("ids = %v, want [outer]", ids)
	}
}
