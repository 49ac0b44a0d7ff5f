package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthTest(t *testing.T) (*services.AuthService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))

	adminRepo := repository.NewAdminRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	authService := services.NewAuthService(adminRepo, farmerRepo, "test-secret")

	hash, err := services.HashPassword("admin123")
	assert.NoError(t, err)
	assert.NoError(t, adminRepo.Create(&models.Admin{Username: "admin", PasswordHash: hash}))

	farmerHash, err := services.HashPassword("secret")
	assert.NoError(t, err)
	assert.NoError(t, farmerRepo.Create(&models.Farmer{Name: "Ravi", Phone: "9876543210", PasswordHash: farmerHash}))

	authMiddleware := NewAuthMiddleware(authService)

	router := gin.New()
	router.GET("/admin-only", authMiddleware.RequireRole(services.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetPrincipalID(c), "role": GetPrincipalRole(c)})
	})

	return authService, router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole_MissingHeader(t *testing.T) {
	_, router := setupAuthTest(t)

	w := request(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_MalformedHeader(t *testing.T) {
	_, router := setupAuthTest(t)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer a b"} {
		w := request(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireRole_InvalidToken(t *testing.T) {
	_, router := setupAuthTest(t)

	w := request(router, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	authService, router := setupAuthTest(t)

	token, _, err := authService.FarmerLogin("9876543210", "secret")
	assert.NoError(t, err)

	w := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access only")
}

func TestRequireRole_ValidAdminToken(t *testing.T) {
	authService, router := setupAuthTest(t)

	token, err := authService.AdminLogin("admin", "admin123")
	assert.NoError(t, err)

	w := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
