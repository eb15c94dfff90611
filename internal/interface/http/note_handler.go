package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notes-api/internal/application"
	"github.com/oksasatya/notes-api/internal/domain/entity"
	"github.com/oksasatya/notes-api/internal/interface/middleware"
	"github.com/oksasatya/notes-api/pkg/response"
	"github.com/oksasatya/notes-api/pkg/validation"
)

type NoteHandler struct {
	Svc    *application.NoteService
	Logger *logrus.Logger
}

func NewNoteHandler(svc *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Svc: svc, Logger: logger}
}

// noteRequest has no required fields; empty notes are allowed.
type noteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func noteView(n *entity.Note) gin.H {
	return gin.H{
		"id":         n.ID,
		"title":      n.Title,
		"content":    n.Content,
		"category":   n.Category,
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
	}
}

// Create POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	email := c.GetString(middleware.CtxUserEmailKey)
	n, err := h.Svc.Create(c.Request.Context(), email, application.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("note create failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "note create failed", nil))
		return
	}

	response.JSON(c, response.Success(c, http.StatusOK, noteView(n), "note created", nil))
}

// List GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	notes, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("note list failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "note list failed", nil))
		return
	}

	views := make([]gin.H, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView(n))
	}
	response.JSON(c, response.Success(c, http.StatusOK, views, "notes", nil))
}

// Update PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	email := c.GetString(middleware.CtxUserEmailKey)
	n, err := h.Svc.Update(c.Request.Context(), email, c.Param("id"), application.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, application.ErrNoteNotFound) {
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "note not found", nil))
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("note update failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "note update failed", nil))
		return
	}

	response.JSON(c, response.Success(c, http.StatusOK, noteView(n), "note updated", nil))
}

// Delete DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	if err := h.Svc.Delete(c.Request.Context(), email, c.Param("id")); err != nil {
		if errors.Is(err, application.ErrNoteNotFound) {
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "note not found", nil))
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("note delete failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "note delete failed", nil))
		return
	}

	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "note deleted", nil))
}

// Search GET /api/notes/search?q=...&size=...
func (h *NoteHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "q is required", nil))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	email := c.GetString(middleware.CtxUserEmailKey)
	hits, err := h.Svc.Search(c.Request.Context(), email, q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("note search failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "note search failed", nil))
		return
	}

	response.JSON(c, response.Success(c, http.StatusOK, hits, "search results", nil))
}
