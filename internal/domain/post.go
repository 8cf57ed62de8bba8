package domain

import "github.com/google/uuid"

// Post is an article written by a user.
type Post struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Author  uuid.UUID `gorm:"type:uuid;index;not null" json:"author"`
}

// Comment is a reply by a user under a post.
type Comment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Author  uuid.UUID `gorm:"type:uuid;index;not null" json:"author"`
	Post    uuid.UUID `gorm:"type:uuid;index;not null" json:"post"`
}

// Vote records one user's up or down vote on a post. A user votes at most
// once per post, so the pair (post, voter) is the primary key.
type Vote struct {
	Post     uuid.UUID `gorm:"type:uuid;primaryKey" json:"post"`
	Voter    uuid.UUID `gorm:"type:uuid;primaryKey" json:"voter"`
	Positive bool      `gorm:"not null" json:"positive"`
}

// Models lists every persistent model, in migration order.
func Models() []any {
	return []any{&User{}, &Post{}, &Comment{}, &Vote{}}
}
