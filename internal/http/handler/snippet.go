// Package handler provides HTTP handler functions for the snipstash API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"snipstash/internal/domain"
	"snipstash/pkg/logger"
)

const (
	// TimeFormat is the standard format for time serialization.
	TimeFormat = "2006-01-02T15:04:05Z"
)

// SnippetService defines the handler's dependency contract.
type SnippetService interface {
	CreateSnippet(ctx context.Context, title, code, language string, tags []string) (domain.Snippet, error)
	ListSnippets(ctx context.Context, search string) ([]domain.Snippet, error)
	DeleteSnippet(ctx context.Context, id int64) (bool, error)
	Languages() []string
}

// Handler handles HTTP requests for snippets.
type Handler struct {
	svc SnippetService
}

// NewHandler constructs a Handler with the given SnippetService.
func NewHandler(svc SnippetService) *Handler {
	return &Handler{svc: svc}
}

func isValidationErr(err error) bool {
	return errors.Is(err, domain.ErrTitleRequired) ||
		errors.Is(err, domain.ErrCodeRequired) ||
		errors.Is(err, domain.ErrInvalidID)
}

func toResponseDTO(s domain.Snippet) domain.SnippetResponseDTO {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.SnippetResponseDTO{
		ID:        s.ID,
		Title:     s.Title,
		Code:      s.Code,
		Language:  s.Language,
		CreatedAt: s.CreatedAt.UTC().Format(TimeFormat),
		Tags:      tags,
	}
}

// Create handles the creation of a new snippet.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreateSnippetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "bad_request", "message": "invalid request", "details": err.Error()}})
		return
	}

	snippet, err := h.svc.CreateSnippet(ctx, req.Title, req.Code, req.Language, req.Tags)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "bad_request", "message": err.Error()}})
			return
		}
		logger.Error(ctx, "failed to create snippet: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error", "message": "internal server error"}})
		return
	}
	logger.With(ctx, map[string]any{"id": snippet.ID, "tags": snippet.Tags}).Info("snippet created")
	c.JSON(http.StatusCreated, toResponseDTO(snippet))
}

// List handles listing snippets with an optional free-text search.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	search := c.Query("search")

	items, err := h.svc.ListSnippets(ctx, search)
	if err != nil {
		logger.Error(ctx, "failed to list snippets: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error", "message": "internal server error"}})
		return
	}
	logger.With(ctx, map[string]any{"count": len(items), "search": search}).Debug("snippets listed")
	list := make([]domain.SnippetResponseDTO, 0, len(items))
	for _, s := range items {
		list = append(list, toResponseDTO(s))
	}
	c.JSON(http.StatusOK, domain.ListSnippetsResponseDTO{Count: len(list), Items: list})
}

// Delete handles removing a snippet by id.
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "bad_request", "message": "id must be a positive integer"}})
		return
	}

	found, err := h.svc.DeleteSnippet(ctx, id)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "bad_request", "message": err.Error()}})
			return
		}
		logger.Error(ctx, "failed to delete snippet: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error", "message": "internal server error"}})
		return
	}
	logger.With(ctx, map[string]any{"id": id, "found": found}).Info("snippet deleted")
	c.JSON(http.StatusOK, domain.DeleteSnippetResponseDTO{Found: found})
}

// Languages returns the fixed list of supported language identifiers.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, domain.LanguagesResponseDTO{Languages: h.svc.Languages()})
}
