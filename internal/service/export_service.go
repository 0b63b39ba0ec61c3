package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/repository"
	"github.com/rs/zerolog"
)

// Supported export formats
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamComments streams comments in the specified format
func (s *exportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting comments export")

	switch format {
	case FormatNDJSON:
		return s.streamNDJSON(ctx, w)
	case FormatJSON:
		return s.streamJSON(ctx, w)
	case FormatCSV:
		return s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GetCount returns the number of stored comments
func (s *exportService) GetCount(ctx context.Context) (int, error) {
	return s.repos.Comment.Count(ctx)
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=comments.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Comment.StreamAll(ctx, func(comment *models.Comment) error {
		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Comments export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=comments.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Comment.StreamAll(ctx, func(comment *models.Comment) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=comments.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"id", "author", "text", "date", "updated_at", "likes", "image"})

	return s.repos.Comment.StreamAll(ctx, func(c *models.Comment) error {
		updatedAt := ""
		if c.UpdatedAt != nil {
			updatedAt = c.UpdatedAt.Format(time.RFC3339Nano)
		}
		return writer.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.Author,
			c.Text,
			c.Date.Format(time.RFC3339Nano),
			updatedAt,
			strconv.Itoa(c.Likes),
			c.Image,
		})
	})
}
