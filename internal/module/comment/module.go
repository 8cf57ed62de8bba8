package comment

import (
	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// CommentModule implements the app.Module interface for comments.
type CommentModule struct {
	routes *rest.Builder
}

// NewModule creates a new CommentModule serving the given store.
// Panics if store is nil.
func NewModule(store rest.Store[domain.Comment]) *CommentModule {
	if store == nil {
		panic("comment.NewModule: store must not be nil")
	}
	return &CommentModule{
		routes: rest.New[domain.Comment, CreateCommentRequest, UpdateCommentRequest, CommentFilter, CommentResponse]("/comments", Resource{}, store),
	}
}

// RegisterRoutes registers the comment API routes.
func (m *CommentModule) RegisterRoutes(api *gin.RouterGroup) {
	m.routes.Register(api)
}
