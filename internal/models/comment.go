package models

import (
	"time"
)

// Field limits shared by the store schema and request validation
const (
	MaxAuthorLength = 100
	MaxImageLength  = 500
	// MaxLikes is the largest value the INTEGER likes column holds
	MaxLikes = 2147483647
)

// Comment represents a single entry in the comment feed
type Comment struct {
	ID        int64      `json:"id" db:"id"`
	Author    string     `json:"author" db:"author"`
	Text      string     `json:"text" db:"text"`
	Date      time.Time  `json:"date" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	Likes     int        `json:"likes" db:"likes"`
	Image     string     `json:"image" db:"image"`
}

// CreateCommentRequest is the only shape accepted when creating a comment.
// id, date, updated_at and likes have no field here and are dropped if sent.
type CreateCommentRequest struct {
	Author string `json:"author" validate:"required,notblank,max=100"`
	Text   string `json:"text" validate:"notblank"`
	Image  string `json:"image" validate:"url_or_empty,max=500"`
}

// UpdateCommentRequest changes the text of an existing comment.
// author is writable on create only, so it has no field here.
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// EditCommentRequest is the looser update shape used in open edit mode.
// Nil pointers leave the stored value untouched.
type EditCommentRequest struct {
	Author *string `json:"author" validate:"omitempty,notblank,max=100"`
	Text   string  `json:"text" validate:"notblank"`
	Image  *string `json:"image" validate:"omitempty,url_or_empty,max=500"`
	Likes  *int    `json:"likes" validate:"omitempty,min=0,max=2147483647"`
}
