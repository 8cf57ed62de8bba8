package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/module/comment"
	"github.com/foxfriends/woof/internal/module/post"
	"github.com/foxfriends/woof/internal/module/user"
	"github.com/foxfriends/woof/internal/module/vote"
)

// Module defines the contract for a self-registering resource module.
// Each module mounts its routes on the API group.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// NewModules builds every resource module over db, in mount order.
func NewModules(db *gorm.DB) []Module {
	return []Module{
		user.NewModule(user.NewRepository(db)),
		post.NewModule(post.NewRepository(db)),
		comment.NewModule(comment.NewRepository(db)),
		vote.NewModule(vote.NewRepository(db)),
	}
}
