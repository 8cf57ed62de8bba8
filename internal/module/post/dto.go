package post

import (
	"github.com/google/uuid"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// CreatePostRequest represents the input for creating or replacing a post.
type CreatePostRequest struct {
	Title   string    `json:"title" binding:"required,max=255"`
	Content string    `json:"content" binding:"required"`
	Author  uuid.UUID `json:"author" binding:"required"`
}

// UpdatePostRequest edits a post's text. The author of a post is fixed.
type UpdatePostRequest struct {
	Title   rest.Field[string] `json:"title"`
	Content rest.Field[string] `json:"content"`
}

// PostFilter is the query string accepted by the post list endpoint.
type PostFilter struct {
	rest.PageQuery
	Title  *string `form:"title"`
	Author *string `form:"author" binding:"omitempty,uuid"`
}

// Predicate constrains the listing by the supplied fields only.
func (f PostFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Title != nil {
		cond = cond.And("title", *f.Title)
	}
	if f.Author != nil {
		// binding already checked the format
		cond = cond.And("author", uuid.MustParse(*f.Author))
	}
	return cond
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  uuid.UUID `json:"author"`
}
