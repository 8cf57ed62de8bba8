package user

import (
	"github.com/google/uuid"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// CreateUserRequest represents the input for creating or replacing a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

// UpdateUserRequest represents a partial update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username rest.Field[string] `json:"username"`
	Email    rest.Field[string] `json:"email"`
}

// UserFilter is the query string accepted by the user list endpoint.
type UserFilter struct {
	rest.PageQuery
	Email    *string `form:"email" binding:"omitempty,email"`
	Username *string `form:"username"`
}

// Predicate constrains the listing by the supplied fields only.
func (f UserFilter) Predicate() domain.Condition {
	var cond domain.Condition
	if f.Email != nil {
		cond = cond.And("email", *f.Email)
	}
	if f.Username != nil {
		cond = cond.And("username", *f.Username)
	}
	return cond
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
