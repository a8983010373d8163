package handler

import (
	"errors"
	"net/http"

	"moviehub/internal/dto"
	"moviehub/internal/middleware"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the signup and token endpoints. limit is the
// per-IP rate limiter shared by all of them.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	auth := router.Group("/auth", limit)
	{
		auth.POST("/email", middleware.RequireAnonymous(), h.SignupEmail)
		auth.POST("/token", h.ConfirmToken)
	}

	token := router.Group("/token", limit)
	{
		token.POST("", h.Login)
		token.POST("/refresh", h.Refresh)
		token.POST("/logout", h.Logout)
	}
}

// SignupEmail requests a confirmation code for an email address, creating
// an inactive account on first contact.
// POST /api/v1/auth/email
func (h *AuthHandler) SignupEmail(c *gin.Context) {
	var req dto.EmailSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, code, err := h.authService.SignupByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"email": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.EmailSignupResponse{
		Email:            user.Email,
		ConfirmationCode: code,
	})
}

// ConfirmToken exchanges email + confirmation code for an access token.
// POST /api/v1/auth/token
func (h *AuthHandler) ConfirmToken(c *gin.Context) {
	var req dto.ConfirmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.ConfirmEmail(c.Request.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		if errors.Is(err, service.ErrInvalidConfirmationCode) {
			c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": "invalid confirmation code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Login issues an access/refresh token pair for email + password.
// POST /api/v1/token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, _, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.authService.AccessTokenTTL().Seconds()),
	})
}

// Refresh exchanges a refresh token for a new access token.
// POST /api/v1/token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAccessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: newAccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.authService.AccessTokenTTL().Seconds()),
	})
}

// Logout revokes a refresh token so it can no longer mint access tokens.
// The response is the same whether or not the token existed.
// POST /api/v1/token/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RevokeToken(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
