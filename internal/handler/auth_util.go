package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/middleware"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

// AuthData holds the extracted user ID and JWT token string.
type AuthData struct {
	UserID uuid.UUID
	Role   domain.Role
	Token  string
}

// ExtractAuthData extracts the authenticated identity from the Gin context and
// writes a 401 when it is missing.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return AuthData{}, false
	}

	tokenStr := c.GetString(middleware.TokenKey)
	role, _ := c.Get(middleware.RoleKey)
	userRole, _ := role.(domain.Role)
	if userRole == "" {
		userRole = domain.RoleUser
	}

	return AuthData{
		UserID: userUUID,
		Role:   userRole,
		Token:  tokenStr,
	}, true
}

// actorFrom returns the caller or Anonymous for public routes
func actorFrom(c *gin.Context) service.Actor {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return service.Anonymous
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return service.Anonymous
	}
	role, _ := c.Get(middleware.RoleKey)
	userRole, _ := role.(domain.Role)
	if userRole == "" {
		userRole = domain.RoleUser
	}
	return service.Actor{ID: userID, Role: userRole}
}

// requireActor is ExtractAuthData for handlers that work with service.Actor
func requireActor(c *gin.Context) (service.Actor, bool) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return service.Anonymous, false
	}
	return service.Actor{ID: auth.UserID, Role: auth.Role}, true
}

// parseIDParam parses a UUID path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindPageQuery binds page/limit/search query parameters
func bindPageQuery(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return q, false
	}
	q.Normalize()
	return q, true
}
