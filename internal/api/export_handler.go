package api

import (
	"net/http"

	"github.com/comment-feed-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/exports/comments?format=...
// Streams every comment directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	ctx := c.Request.Context()

	format := c.Query("format")
	if format == "" {
		format = service.FormatJSON
	}
	if format != service.FormatNDJSON && format != service.FormatJSON && format != service.FormatCSV {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: json, ndjson, csv"})
		return
	}

	h.log.Info().
		Str("format", format).
		Str("request_id", c.GetString("request_id")).
		Msg("Starting streaming export")

	if err := h.services.Export.StreamComments(ctx, c.Writer, format); err != nil {
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		// Can't return error JSON after streaming has started
		return
	}
}
