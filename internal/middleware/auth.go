package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blog-engagement-api/internal/response"
)

// Context keys shared with handlers
const (
	UserIDKey = "user_id"
	TokenKey  = "jwtToken"
	RoleKey   = "user_role"
)

var (
	errMissingToken   = errors.New("missing bearer token")
	errMalformedToken = errors.New("invalid authorization header format")
)

// TokenValidator resolves a bearer token into a user id
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// JWTValidator validates HMAC signed tokens locally. Tokens are issued elsewhere.
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a validator for the shared secret
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// ValidateToken parses the token and extracts the user id claim
func (v *JWTValidator) ValidateToken(_ context.Context, tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	// Support multiple claim formats
	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else if uid, ok := claims["uid"].(string); ok {
		userIDStr = uid
	} else {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	return uuid.Parse(userIDStr)
}

// Auth rejects requests without a valid bearer token
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, authErrorMessage(err))
			c.Abort()
			return
		}

		userID, err := validate(c, validator, tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, tokenString)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is present and lets anonymous
// requests through. A token that is present but invalid is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if errors.Is(err, errMissingToken) {
			c.Next()
			return
		}
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, authErrorMessage(err))
			c.Abort()
			return
		}

		userID, err := validate(c, validator, tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, tokenString)
		c.Next()
	}
}

func validate(c *gin.Context, validator TokenValidator, tokenString string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	return validator.ValidateToken(ctx, tokenString)
}

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set headers
// on a websocket handshake, so a "token" query parameter is accepted as well.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errMalformedToken
	}
	return parts[1], nil
}

func authErrorMessage(err error) string {
	if errors.Is(err, errMissingToken) {
		return "Authorization header is required"
	}
	return "Invalid authorization header format"
}
