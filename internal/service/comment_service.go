package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/repository"
	"github.com/comment-feed-api/internal/validation"
	"github.com/rs/zerolog"
)

// timestampResolution matches the precision PostgreSQL keeps for timestamptz
const timestampResolution = time.Microsecond

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo      repository.CommentRepository
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// newCommentService creates a CommentService. A nil clock means time.Now.
func newCommentService(repo repository.CommentRepository, v *validation.Validator, log zerolog.Logger, now func() time.Time) *commentService {
	if now == nil {
		now = time.Now
	}
	return &commentService{
		repo:      repo,
		validator: v,
		log:       log.With().Str("service", "comment").Logger(),
		now:       now,
	}
}

func (s *commentService) clock() time.Time {
	return s.now().UTC().Truncate(timestampResolution)
}

// List returns every comment, newest first
func (s *commentService) List(ctx context.Context) ([]*models.Comment, error) {
	comments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Get returns one comment or ErrNotFound
func (s *commentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// Create trims and validates the request, then stores a new comment.
// date, likes and updated_at are assigned here and nowhere else.
func (s *commentService) Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error) {
	in := *req
	in.Author = strings.TrimSpace(in.Author)
	in.Text = strings.TrimSpace(in.Text)
	in.Image = strings.TrimSpace(in.Image)
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Author: in.Author,
		Text:   in.Text,
		Image:  in.Image,
		Date:   s.clock(),
		Likes:  0,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

// Update replaces the text of an existing comment. Surrounding whitespace is
// dropped before comparing, so it never counts as an edit.
func (s *commentService) Update(ctx context.Context, id int64, req *models.UpdateCommentRequest) (*models.Comment, error) {
	in := *req
	in.Text = strings.TrimSpace(in.Text)
	return s.apply(ctx, id, &in, func(c *models.Comment) {
		c.Text = in.Text
	})
}

// Edit applies the looser update shape
func (s *commentService) Edit(ctx context.Context, id int64, req *models.EditCommentRequest) (*models.Comment, error) {
	in := *req
	in.Text = strings.TrimSpace(in.Text)
	in.Author = trimPtr(in.Author)
	in.Image = trimPtr(in.Image)
	return s.apply(ctx, id, &in, func(c *models.Comment) {
		c.Text = in.Text
		if in.Author != nil {
			c.Author = *in.Author
		}
		if in.Image != nil {
			c.Image = *in.Image
		}
		if in.Likes != nil {
			c.Likes = *in.Likes
		}
	})
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// apply loads the stored comment, validates req, applies mutate to a copy,
// stamps updated_at when the text changed, then writes the copy back.
func (s *commentService) apply(ctx context.Context, id int64, req interface{}, mutate func(*models.Comment)) (*models.Comment, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	next := *prev
	mutate(&next)
	next.ID = prev.ID
	next.Date = prev.Date
	touch(prev, &next, s.clock())

	found, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.log.Info().
		Int64("comment_id", id).
		Bool("text_changed", prev.Text != next.Text).
		Msg("Comment updated")

	return &next, nil
}

// touch sets next.UpdatedAt when the text changed and leaves it alone otherwise.
// A new stamp is always strictly later than the previous one.
func touch(prev, next *models.Comment, now time.Time) {
	if prev.Text == next.Text {
		next.UpdatedAt = prev.UpdatedAt
		return
	}
	if prev.UpdatedAt != nil && !now.After(*prev.UpdatedAt) {
		now = prev.UpdatedAt.Add(timestampResolution)
	}
	next.UpdatedAt = &now
}

// Delete hard-deletes a comment
func (s *commentService) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}
