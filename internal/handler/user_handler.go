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

type UserHandler struct {
	userService service.UserService
	pages       PageConfig
}

func NewUserHandler(userService service.UserService, pages PageConfig) *UserHandler {
	return &UserHandler{
		userService: userService,
		pages:       pages,
	}
}

// RegisterRoutes registers the admin user CRUD and the self endpoints.
// /users/me is a static route so gin matches it before /users/:username.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	adminOnly := middleware.Authorize(permission.ActionAdmin, permission.ResourceUser)
	{
		users.GET("/me", middleware.RequireAuthenticated(), h.GetMe)
		users.PATCH("/me", middleware.RequireAuthenticated(), h.UpdateMe)
		users.DELETE("/me", middleware.RequireAuthenticated(), h.DeleteMe)

		users.GET("", adminOnly, h.List)
		users.POST("", adminOnly, h.Create)
		users.GET("/:username", adminOnly, h.Get)
		users.PUT("/:username", adminOnly, h.Update)
		users.PATCH("/:username", adminOnly, h.Update)
		users.DELETE("/:username", adminOnly, h.Delete)
	}
}

// List retrieves all users.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := h.pages.params(c)

	users, total, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.FromModelToUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(c.Request, total, page, pageSize, results))
}

// Create adds a user with an explicit role.
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PUT/PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user, req, true)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe returns the requester's own profile.
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	claims := middleware.RequesterClaims(c)

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// UpdateMe edits the requester's own profile. Role changes are ignored.
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claims := middleware.RequesterClaims(c)

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user, req, false)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

// DeleteMe always refuses: accounts are removed by admins, not their owners.
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusBadRequest, gin.H{"email": "email already in use"})
	case errors.Is(err, service.ErrUsernameInUse):
		c.JSON(http.StatusBadRequest, gin.H{"username": "username already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
