package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/comment-feed-api/internal/config"
	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/service"
	"github.com/comment-feed-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment CRUD endpoints
type CommentHandler struct {
	services *service.Services
	editMode string
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, editMode string, log zerolog.Logger) *CommentHandler {
	if editMode == "" {
		editMode = config.EditModeStrict
	}
	return &CommentHandler{
		services: services,
		editMode: editMode,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// List handles GET /api/comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.services.Comment.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Get handles GET /api/comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	comment, err := h.services.Comment.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Update handles PUT and PATCH /api/comments/:id. Both verbs take the same
// body; in open edit mode author, image and likes are accepted too.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		comment *models.Comment
		err     error
	)
	if h.editMode == config.EditModeOpen {
		var req models.EditCommentRequest
		if !bindJSON(c, &req) {
			return
		}
		comment, err = h.services.Comment.Edit(ctx, id, &req)
	} else {
		var req models.UpdateCommentRequest
		if !bindJSON(c, &req) {
			return
		}
		comment, err = h.services.Comment.Update(ctx, id, &req)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter, writing a 400 when it is not a positive integer
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into req. An empty body decodes as {} so
// that validation reports the missing fields. A value of the wrong JSON type
// is reported against its field. Writes a 400 and returns false on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validation.Errors{typeErr.Field: validation.InvalidTypeMessage},
		})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	return false
}

// fail maps a service error onto a response
func (h *CommentHandler) fail(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	default:
		h.log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Comment request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
