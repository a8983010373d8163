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

type CategoryHandler struct {
	categoryService service.CategoryService
	pages           PageConfig
}

func NewCategoryHandler(categoryService service.CategoryService, pages PageConfig) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		pages:           pages,
	}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	adminOnly := middleware.Authorize(permission.ActionWrite, permission.ResourceCategory)
	{
		categories.GET("", h.List)
		categories.POST("", adminOnly, h.Create)
		categories.DELETE("/:slug", adminOnly, h.Delete)
	}
}

// List retrieves categories, optionally filtered by name.
// GET /api/v1/categories?search=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := h.pages.params(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		results = append(results, dto.FromModelToCategoryResponse(cat))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(c.Request, total, page, pageSize, results))
}

// Create adds a category.
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSlugInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"slug": "slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToCategoryResponse(*category))
}

// Delete removes a category; its titles stay, uncategorized.
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
