// Package seed replaces the comments table with the contents of a JSON file.
//
// It is an operator tool. Nothing in the HTTP router reaches it.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/repository"
	"github.com/rs/zerolog"
)

// DefaultPath is where the seed file is looked up relative to the working directory
const DefaultPath = "../../comments.json"

// ErrMissingComments is returned when the document has no top-level "comments" array
var ErrMissingComments = errors.New(`seed document has no "comments" array`)

// ErrTrailingData is returned when anything but whitespace follows the document
var ErrTrailingData = errors.New("seed document has trailing data")

// RecordError describes a bad element of the comments array
type RecordError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("comment %d: field %q: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("comment %d: missing required field %q", e.Index, e.Field)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Parse decodes a seed document into comments ready to insert, in input order.
// Dates accept most human formats; times without a zone are read as UTC.
func Parse(r io.Reader) ([]*models.Comment, error) {
	var doc models.SeedFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed document: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	if doc.Comments == nil {
		return nil, ErrMissingComments
	}

	records := *doc.Comments
	comments := make([]*models.Comment, 0, len(records))
	for i, rec := range records {
		switch {
		case rec.Author == nil:
			return nil, &RecordError{Index: i, Field: "author"}
		case rec.Text == nil:
			return nil, &RecordError{Index: i, Field: "text"}
		case rec.Likes == nil:
			return nil, &RecordError{Index: i, Field: "likes"}
		case strings.TrimSpace(rec.Date) == "":
			return nil, &RecordError{Index: i, Field: "date"}
		}

		date, err := dateparse.ParseIn(strings.TrimSpace(rec.Date), time.UTC)
		if err != nil {
			return nil, &RecordError{Index: i, Field: "date", Err: err}
		}

		comments = append(comments, &models.Comment{
			Author: *rec.Author,
			Text:   *rec.Text,
			Date:   date.UTC(),
			Likes:  *rec.Likes,
			Image:  rec.Image,
		})
	}
	return comments, nil
}

// Loader wipes and repopulates the comment store
type Loader struct {
	repo repository.CommentRepository
	log  zerolog.Logger
}

// NewLoader creates a Loader writing through repo
func NewLoader(repo repository.CommentRepository, log zerolog.Logger) *Loader {
	return &Loader{
		repo: repo,
		log:  log.With().Str("component", "seed").Logger(),
	}
}

// LoadFile reads path and replaces every stored comment with its contents
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	l.log.Info().Str("path", path).Msg("Loading seed file")
	return l.Load(ctx, f)
}

// Load parses the whole document before touching the store, so a bad record
// leaves existing rows in place.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	comments, err := Parse(r)
	if err != nil {
		return 0, err
	}

	n, err := l.repo.ReplaceAll(ctx, comments)
	if err != nil {
		return 0, fmt.Errorf("failed to replace comments: %w", err)
	}

	l.log.Info().Int("count", n).Msg("Seed load completed")
	return n, nil
}
