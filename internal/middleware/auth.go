package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	principalIDKey   = "principalID"
	principalRoleKey = "principalRole"
)

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireRole authenticates the bearer token and enforces the principal
// kind. A bad or missing token is 401; a valid token with the wrong role
// is 403.
func (m *AuthMiddleware) RequireRole(role services.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.authService.Authenticate(parts[1], role)
		if err != nil {
			if errors.Is(err, services.ErrWrongRole) {
				c.JSON(http.StatusForbidden, gin.H{"error": string(role) + " access only"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(principalIDKey, claims.PrincipalID)
		c.Set(principalRoleKey, claims.Role)
		c.Next()
	}
}

// GetPrincipalID returns the authenticated principal's id, zero if the
// request never passed the role gate.
func GetPrincipalID(c *gin.Context) uint {
	id, exists := c.Get(principalIDKey)
	if !exists {
		return 0
	}
	return id.(uint)
}

func GetPrincipalRole(c *gin.Context) services.Role {
	role, exists := c.Get(principalRoleKey)
	if !exists {
		return ""
	}
	return role.(services.Role)
}
