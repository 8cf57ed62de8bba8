package comment

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// Resource exposes domain.Comment over REST.
type Resource struct{}

var keyColumns = []rest.KeyColumn{rest.UUIDColumn("id")}

// NewRepository creates the comment store backed by db.
func NewRepository(db *gorm.DB) rest.Store[domain.Comment] {
	return rest.NewRepository[domain.Comment](db, keyColumns)
}

func (Resource) Name() string { return "comment" }

func (Resource) KeyColumns() []rest.KeyColumn { return keyColumns }

func (Resource) FromCreate(req CreateCommentRequest) rest.Diff {
	var d rest.Diff
	d.Set("id", uuid.New())
	d.Set("content", req.Content)
	d.Set("author", req.Author)
	d.Set("post", req.Post)
	return d
}

func (Resource) FromUpdate(req UpdateCommentRequest) rest.Diff {
	var d rest.Diff
	rest.SetField(&d, "content", req.Content)
	return d
}

func (Resource) Represent(c *domain.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Content: c.Content, Author: c.Author, Post: c.Post}
}
