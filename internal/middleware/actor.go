package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/response"
)

// ActorResolver loads the account behind an authenticated user id
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// ResolveRole attaches the caller's role to the context. It must run after
// Auth or OptionalAuth; anonymous requests pass through untouched.
func ResolveRole(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(UserIDKey)
		if !exists {
			c.Next()
			return
		}
		userID, ok := value.(uuid.UUID)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID in context")
			c.Abort()
			return
		}

		user, err := resolver.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			if response.HasCode(err, response.ErrCodeUnauthorized) {
				response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Account no longer exists")
			} else {
				response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to resolve account")
			}
			c.Abort()
			return
		}

		c.Set(RoleKey, user.Role)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless ResolveRole marked the caller as admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if r, ok := role.(domain.Role); !ok || r != domain.RoleAdmin {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
