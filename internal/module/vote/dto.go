package vote

import (
	"github.com/google/uuid"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// CreateVoteRequest represents the input for casting or replacing a vote.
// Positive is a pointer so that an explicit false passes the required check.
type CreateVoteRequest struct {
	Post     uuid.UUID `json:"post" binding:"required"`
	Voter    uuid.UUID `json:"voter" binding:"required"`
	Positive *bool     `json:"positive" binding:"required"`
}

// UpdateVoteRequest flips a vote.
type UpdateVoteRequest struct {
	Positive rest.Field[bool] `json:"positive"`
}

// VoteFilter is the query string accepted by the vote list endpoint.
type VoteFilter struct {
	rest.PageQuery
	Positive *bool   `form:"positive"`
	Voter    *string `form:"voter" binding:"omitempty,uuid"`
	Post     *string `form:"post" binding:"omitempty,uuid"`
}

// Predicate constrains the listing by the supplied fields only.
func (f VoteFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Positive != nil {
		cond = cond.And("positive", *f.Positive)
	}
	if f.Voter != nil {
		cond = cond.And("voter", uuid.MustParse(*f.Voter))
	}
	if f.Post != nil {
		cond = cond.And("post", uuid.MustParse(*f.Post))
	}
	return cond
}

// VoteResponse is the public representation of a vote.
type VoteResponse struct {
	Post     uuid.UUID `json:"post"`
	Voter    uuid.UUID `json:"voter"`
	Positive bool      `json:"positive"`
}
