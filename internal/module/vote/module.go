package vote

import (
	"github.com/gin-gonic/gin"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// VoteModule implements the app.Module interface for votes.
type VoteModule struct {
	routes *rest.Builder
}

// NewModule creates a new VoteModule serving the given store.
// Panics if store is nil.
func NewModule(store rest.Store[domain.Vote]) *VoteModule {
	if store == nil {
		panic("vote.NewModule: store must not be nil")
	}
	return &VoteModule{
		routes: rest.New[domain.Vote, CreateVoteRequest, UpdateVoteRequest, VoteFilter, VoteResponse]("/votes", Resource{}, store),
	}
}

// RegisterRoutes registers the vote API routes.
func (m *VoteModule) RegisterRoutes(api *gin.RouterGroup) {
	m.routes.Register(api)
}
