package pkg

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbtest "gorm.io/gorm/utils/tests"

	"github.com/foxfriends/woof/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(dbtest.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func limitClause(t *testing.T, db *gorm.DB) clause.Limit {
	t.Helper()
	c, ok := db.Statement.Clauses["LIMIT"]
	if !ok {
		t.Fatal("expected LIMIT clause to be applied")
	}
	limit, ok := c.Expression.(clause.Limit)
	if !ok {
		t.Fatalf("LIMIT expression is %T", c.Expression)
	}
	return limit
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		req        domain.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"first page", domain.PageRequest{Offset: 0, Limit: 10}, 10, 0},
		{"second page", domain.PageRequest{Offset: 20, Limit: 20}, 20, 20},
		{"zero limit defaults", domain.PageRequest{Offset: 0, Limit: 0}, DefaultLimit, 0},
		{"limit clamped", domain.PageRequest{Offset: 5, Limit: 500}, MaxLimit, 5},
		{"negative offset", domain.PageRequest{Offset: -3, Limit: 10}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Paginate(tt.req)(newTestDB(t))
			limit := limitClause(t, result)
			if limit.Limit == nil || *limit.Limit != tt.wantLimit {
				t.Errorf("Limit = %v; want %d", limit.Limit, tt.wantLimit)
			}
			if limit.Offset != tt.wantOffset {
				t.Errorf("Offset = %d; want %d", limit.Offset, tt.wantOffset)
			}
		})
	}
}

func TestWhere(t *testing.T) {
	tests := []struct {
		name    string
		cond    domain.Condition
		applied bool
	}{
		{"empty condition", nil, false},
		{"single constraint", domain.Condition{}.And("title", "A"), true},
		{"two constraints", domain.Condition{}.And("title", "A").And("author", "u1"), true},
		{"sql injection in column", domain.Condition{}.And("title;DROP TABLE posts--", "A"), false},
		{"column with spaces", domain.Condition{}.And("title OR 1=1", "A"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Where(tt.cond)(newTestDB(t))
			_, hasWhere := result.Statement.Clauses["WHERE"]
			if hasWhere != tt.applied {
				t.Errorf("Where clause applied=%v, want %v", hasWhere, tt.applied)
			}
		})
	}
}

func TestWhere_PreservesOrder(t *testing.T) {
	cond := domain.Condition{}.And("post", "p1").And("voter", "u1")
	result := Where(cond)(newTestDB(t))

	where, ok := result.Statement.Clauses["WHERE"].Expression.(clause.Where)
	if !ok {
		t.Fatal("expected WHERE expression")
	}
	if len(where.Exprs) != 2 {
		t.Fatalf("len(Exprs) = %d; want 2", len(where.Exprs))
	}
	first, ok := where.Exprs[0].(clause.Eq)
	if !ok {
		t.Fatalf("Exprs[0] is %T; want clause.Eq", where.Exprs[0])
	}
	if col, _ := first.Column.(clause.Column); col.Name != "post" {
		t.Errorf("first column = %v; want post", first.Column)
	}
}

func TestOrderBy(t *testing.T) {
	result := OrderBy("post", "voter")(newTestDB(t))
	if _, ok := result.Statement.Clauses["ORDER BY"]; !ok {
		t.Error("expected ORDER BY clause to be applied")
	}

	result = OrderBy("1=1;--")(newTestDB(t))
	if _, ok := result.Statement.Clauses["ORDER BY"]; ok {
		t.Error("expected invalid column to be ignored")
	}
}

func TestValidFieldName(t *testing.T) {
	valid := []string{"id", "title", "created_at", "post_id", "_private"}
	invalid := []string{"", "1field", "name;DROP", "field name", "a.b", "a-b"}

	for _, f := range valid {
		if !validFieldName.MatchString(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	for _, f := range invalid {
		if validFieldName.MatchString(f) {
			t.Errorf("expected %q to be invalid", f)
		}
	}
}
