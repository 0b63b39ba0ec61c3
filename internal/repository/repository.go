package repository

import (
	"context"

	"github.com/comment-feed-api/internal/database"
	"github.com/comment-feed-api/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// List returns every comment, newest first.
	List(ctx context.Context) ([]*models.Comment, error)
	// GetByID returns nil, nil when no comment has the id.
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// Create inserts the comment and sets its ID.
	Create(ctx context.Context, comment *models.Comment) error
	// Update writes the mutable columns. It reports false when the row is gone.
	Update(ctx context.Context, comment *models.Comment) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ReplaceAll deletes every row and inserts comments in order, atomically.
	ReplaceAll(ctx context.Context, comments []*models.Comment) (int, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Comment) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Comment: NewCommentRepo(db),
	}
}
