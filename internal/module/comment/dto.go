package comment

import (
	"github.com/google/uuid"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// CreateCommentRequest represents the input for creating or replacing a comment.
type CreateCommentRequest struct {
	Content string    `json:"content" binding:"required"`
	Author  uuid.UUID `json:"author" binding:"required"`
	Post    uuid.UUID `json:"post" binding:"required"`
}

// UpdateCommentRequest edits a comment's text.
type UpdateCommentRequest struct {
	Content rest.Field[string] `json:"content"`
}

// CommentFilter is the query string accepted by the comment list endpoint.
type CommentFilter struct {
	rest.PageQuery
	Author *string `form:"author" binding:"omitempty,uuid"`
	Post   *string `form:"post" binding:"omitempty,uuid"`
}

// Predicate constrains the listing by the supplied fields only.
func (f CommentFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Author != nil {
		cond = cond.And("author", uuid.MustParse(*f.Author))
	}
	if f.Post != nil {
		cond = cond.And("post", uuid.MustParse(*f.Post))
	}
	return cond
}

// CommentResponse is the public representation of a comment.
type CommentResponse struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Author  uuid.UUID `json:"author"`
	Post    uuid.UUID `json:"post"`
}
