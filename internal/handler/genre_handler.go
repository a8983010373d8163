package handler

import (
	"errors"
	"net/http"

	"moviehub/internal/dto"
	"moviehub/internal/middleware"
	"moviehub/internal/permission"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
	pages        PageConfig
}

func NewGenreHandler(genreService service.GenreService, pages PageConfig) *GenreHandler {
	return &GenreHandler{
		genreService: genreService,
		pages:        pages,
	}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	adminOnly := middleware.Authorize(permission.ActionWrite, permission.ResourceGenre)
	{
		genres.GET("", h.List)
		genres.POST("", adminOnly, h.Create)
		genres.DELETE("/:slug", adminOnly, h.Delete)
	}
}

// List retrieves genres, optionally filtered by name.
// GET /api/v1/genres?search=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := h.pages.params(c)

	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		results = append(results, dto.FromModelToGenreResponse(g))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(c.Request, total, page, pageSize, results))
}

// Create adds a genre.
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSlugInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"slug": "slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(*genre))
}

// Delete removes a genre by slug. Titles keep their other genres.
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
