package user

import (
	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	routes *rest.Builder
}

// NewModule creates a new UserModule serving the given store.
// Panics if store is nil.
func NewModule(store rest.Store[domain.User]) *UserModule {
	if store == nil {
		panic("user.NewModule: store must not be nil")
	}
	return &UserModule{
		routes: rest.New[domain.User, CreateUserRequest, UpdateUserRequest, UserFilter, UserResponse]("/users", Resource{}, store),
	}
}

// RegisterRoutes registers the user API routes.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	m.routes.Register(api)
}
