package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/rest"
)

// Resource exposes domain.User over REST.
type Resource struct{}

var keyColumns = []rest.KeyColumn{rest.UUIDColumn("id")}

// NewRepository creates the user store backed by db.
func NewRepository(db *gorm.DB) rest.Store[domain.User] {
	return rest.NewRepository[domain.User](db, keyColumns)
}

func (Resource) Name() string { return "user" }

func (Resource) KeyColumns() []rest.KeyColumn { return keyColumns }

// FromCreate assigns a fresh id; replace overrides it with the id from the path.
func (Resource) FromCreate(req CreateUserRequest) rest.Diff {
	var d rest.Diff
	d.Set("id", uuid.New())
	d.Set("username", req.Username)
	d.Set("email", req.Email)
	return d
}

func (Resource) FromUpdate(req UpdateUserRequest) rest.Diff {
	var d rest.Diff
	rest.SetField(&d, "username", req.Username)
	rest.SetField(&d, "email", req.Email)
	return d
}

func (Resource) Represent(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
