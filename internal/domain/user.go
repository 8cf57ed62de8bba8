package domain

import "github.com/google/uuid"

// User represents a registered account.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
}
