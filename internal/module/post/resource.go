package post

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// Resource exposes domain.Post over REST.
type Resource struct{}

var keyColumns = []rest.KeyColumn{rest.UUIDColumn("id")}

// NewRepository creates the post store backed by db.
func NewRepository(db *gorm.DB) rest.Store[domain.Post] {
	return rest.NewRepository[domain.Post](db, keyColumns)
}

func (Resource) Name() string { return "post" }

func (Resource) KeyColumns() []rest.KeyColumn { return keyColumns }

func (Resource) FromCreate(req CreatePostRequest) rest.Diff {
	var d rest.Diff
	d.Set("id", uuid.New())
	d.Set("title", req.Title)
	d.Set("content", req.Content)
	d.Set("author", req.Author)
	return d
}

func (Resource) FromUpdate(req UpdatePostRequest) rest.Diff {
	var d rest.Diff
	rest.SetField(&d, "title", req.Title)
	rest.SetField(&d, "content", req.Content)
	return d
}

func (Resource) Represent(p *domain.Post) PostResponse {
	return PostResponse{ID: p.ID, Title: p.Title, Content: p.Content, Author: p.Author}
}
