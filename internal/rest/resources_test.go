package rest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/foxfriends/woof/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- post fixtures ---

type postCreate struct {
	Title   string    `json:"title" binding:"required"`
	Content string    `json:"content" binding:"required"`
	Author  uuid.UUID `json:"author" binding:"required"`
}

type postUpdate struct {
	Title   Field[string] `json:"title"`
	Content Field[string] `json:"content"`
}

type postFilter struct {
	PageQuery
	Title  *string `form:"title"`
	Author *string `form:"author" binding:"omitempty,uuid"`
}

func (f postFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Title != nil {
		cond = cond.And("title", *f.Title)
	}
	if f.Author != nil {
		cond = cond.And("author", uuid.MustParse(*f.Author))
	}
	return cond
}

type postResource struct{}

func (postResource) Name() string            { return "post" }
func (postResource) KeyColumns() []KeyColumn { return []KeyColumn{UUIDColumn("id")} }

func (postResource) FromCreate(c postCreate) Diff {
	var d Diff
	d.Set("id", uuid.New())
	d.Set("title", c.Title)
	d.Set("content", c.Content)
	d.Set("author", c.Author)
	return d
}

func (postResource) FromUpdate(u postUpdate) Diff {
	var d Diff
	SetField(&d, "title", u.Title)
	SetField(&d, "content", u.Content)
	return d
}

func (postResource) Represent(m *domain.Post) domain.Post { return *m }

// --- vote fixtures ---

type voteCreate struct {
	Post     uuid.UUID `json:"post" binding:"required"`
	Voter    uuid.UUID `json:"voter" binding:"required"`
	Positive *bool     `json:"positive" binding:"required"`
}

type voteUpdate struct {
	Positive Field[bool] `json:"positive"`
}

type voteFilter struct {
	PageQuery
	Voter *string `form:"voter" binding:"omitempty,uuid"`
}

func (f voteFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Voter != nil {
		cond = cond.And("voter", uuid.MustParse(*f.Voter))
	}
	return cond
}

type voteResource struct{}

func (voteResource) Name() string { return "vote" }
func (voteResource) KeyColumns() []KeyColumn {
	return []KeyColumn{UUIDColumn("post"), UUIDColumn("voter")}
}

func (voteResource) FromCreate(c voteCreate) Diff {
	var d Diff
	d.Set("post", c.Post)
	d.Set("voter", c.Voter)
	d.Set("positive", *c.Positive)
	return d
}

func (voteResource) FromUpdate(u voteUpdate) Diff {
	var d Diff
	SetField(&d, "positive", u.Positive)
	return d
}

func (voteResource) Represent(m *domain.Vote) domain.Vote { return *m }

// --- helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every statement on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	return db
}

func postStore(db *gorm.DB) Store[domain.Post] {
	return NewRepository[domain.Post](db, postResource{}.KeyColumns())
}

func voteStore(db *gorm.DB) Store[domain.Vote] {
	return NewRepository[domain.Vote](db, voteResource{}.KeyColumns())
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	r := gin.New()
	api := r.Group("/api")
	New[domain.Post, postCreate, postUpdate, postFilter, domain.Post]("/posts", postResource{}, postStore(db)).Register(api)
	New[domain.Vote, voteCreate, voteUpdate, voteFilter, domain.Vote]("/votes", voteResource{}, voteStore(db)).Register(api)
	return r, db
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPost(t *testing.T, db *gorm.DB, title, content string, author uuid.UUID) domain.Post {
	t.Helper()
	p := domain.Post{ID: uuid.New(), Title: title, Content: content, Author: author}
	require.NoError(t, db.Create(&p).Error)
	return p
}
