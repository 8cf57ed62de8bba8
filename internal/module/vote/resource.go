package vote

import (
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// Resource exposes domain.Vote over REST. A vote is addressed by the post
// and the voter, in that order: /votes/<post>/<voter>.
type Resource struct{}

var keyColumns = []rest.KeyColumn{
	rest.UUIDColumn("post"),
	rest.UUIDColumn("voter"),
}

// NewRepository creates the vote store backed by db.
func NewRepository(db *gorm.DB) rest.Store[domain.Vote] {
	return rest.NewRepository[domain.Vote](db, keyColumns)
}

func (Resource) Name() string { return "vote" }

func (Resource) KeyColumns() []rest.KeyColumn { return keyColumns }

func (Resource) FromCreate(req CreateVoteRequest) rest.Diff {
	var d rest.Diff
	d.Set("post", req.Post)
	d.Set("voter", req.Voter)
	d.Set("positive", *req.Positive)
	return d
}

func (Resource) FromUpdate(req UpdateVoteRequest) rest.Diff {
	var d rest.Diff
	rest.SetField(&d, "positive", req.Positive)
	return d
}

func (Resource) Represent(v *domain.Vote) VoteResponse {
	return VoteResponse{Post: v.Post, Voter: v.Voter, Positive: v.Positive}
}
