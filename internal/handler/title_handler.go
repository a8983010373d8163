package handler

import (
	"errors"
	"net/http"
	"strconv"

	"moviehub/internal/dto"
	"moviehub/internal/middleware"
	"moviehub/internal/permission"
	"moviehub/internal/repository"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
	pages        PageConfig
}

func NewTitleHandler(titleService service.TitleService, pages PageConfig) *TitleHandler {
	return &TitleHandler{
		titleService: titleService,
		pages:        pages,
	}
}

// RegisterRoutes registers title routes. Reads are open to anonymous
// requesters; writes go through the admin-only catalog policy.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	titles := router.Group("/titles")
	adminOnly := middleware.Authorize(permission.ActionWrite, permission.ResourceTitle)
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)

		titles.POST("", adminOnly, h.Create)
		titles.PUT("/:title_id", adminOnly, h.Update)
		titles.PATCH("/:title_id", adminOnly, h.Update)
		titles.DELETE("/:title_id", adminOnly, h.Delete)
	}
}

func titleIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return 0, false
	}
	return id, true
}

// List retrieves titles with combinable filters.
// GET /api/v1/titles?category=&genre=&name=&year=&page=&page_size=
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"year": "must be an integer"})
			return
		}
		filter.Year = &year
	}

	page, pageSize := h.pages.params(c)

	titles, total, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		results = append(results, dto.FromModelToTitleResponse(&titles[i]))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(c.Request, total, page, pageSize, results))
}

// Get retrieves a single title with its computed rating.
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// Create adds a title to the catalog.
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(title))
}

// Update applies a partial or full update to a title.
// PUT/PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// Delete removes a title; its reviews go with it.
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := titleIDParam(c)
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TitleHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrYearOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"year": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
