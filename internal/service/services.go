package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/repository"
	"github.com/comment-feed-api/internal/validation"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when an operation targets a comment id that does not exist
var ErrNotFound = errors.New("comment not found")

// CommentService defines the comment CRUD operations exposed over HTTP
type CommentService interface {
	List(ctx context.Context) ([]*models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error)
	// Update changes only the text of a comment.
	Update(ctx context.Context, id int64, req *models.UpdateCommentRequest) (*models.Comment, error)
	// Edit may also overwrite author, image and likes.
	Edit(ctx context.Context, id int64, req *models.EditCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamComments(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Comment: newCommentService(repos.Comment, validation.NewValidator(), log, nil),
		Export:  newExportService(repos, log),
	}
}
