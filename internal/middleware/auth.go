package middleware

import (
	"net/http"
	"strings"

	"moviehub/internal/permission"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// OptionalAuth resolves the requester's identity when a bearer token is
// present and leaves the request anonymous otherwise. A token that is
// present but invalid is rejected outright.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequesterClaims rebuilds the requester's identity from the context.
// Nil when the request is anonymous.
func RequesterClaims(c *gin.Context) *service.Claims {
	userID, exists := c.Get(CtxUserID)
	if !exists {
		return nil
	}
	return &service.Claims{
		UserID:   userID.(string),
		Username: c.GetString(CtxUsername),
		Role:     c.GetString(CtxRole),
	}
}

// RequesterRole returns the requester's role, RoleAnonymous for anonymous
// requests.
func RequesterRole(c *gin.Context) permission.Role {
	return permission.Role(c.GetString(CtxRole))
}

// Authorize gates a route on the central permission policy, without an
// ownership dimension. Anonymous requesters get 401, known ones 403.
func Authorize(action permission.Action, resource permission.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RequesterRole(c)
		if permission.Can(role, action, resource, false) {
			c.Next()
			return
		}
		if role == permission.RoleAnonymous {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		}
		c.Abort()
	}
}

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxUserID); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnonymous guards the signup endpoint: it only makes sense for
// callers without an account session.
func RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxUserID); exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "already authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}
