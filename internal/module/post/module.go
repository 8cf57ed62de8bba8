package post

import (
	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// PostModule implements the app.Module interface for posts.
type PostModule struct {
	routes *rest.Builder
}

// NewModule creates a new PostModule serving the given store.
// Panics if store is nil.
func NewModule(store rest.Store[domain.Post]) *PostModule {
	if store == nil {
		panic("post.NewModule: store must not be nil")
	}
	return &PostModule{
		routes: rest.New[domain.Post, CreatePostRequest, UpdatePostRequest, PostFilter, PostResponse]("/posts", Resource{}, store),
	}
}

// RegisterRoutes registers the post API routes.
func (m *PostModule) RegisterRoutes(api *gin.RouterGroup) {
	m.routes.Register(api)
}
