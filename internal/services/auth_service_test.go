package services

import (
	"testing"
	"time"

	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/stretchr/testify/assert"
)

func setupAuthTestDB(t *testing.T) (*repository.AdminRepository, *repository.FarmerRepository, *AuthService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	adminRepo := repository.NewAdminRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	authService := NewAuthService(adminRepo, farmerRepo, "test-secret")

	return adminRepo, farmerRepo, authService
}

func createTestAdmin(t *testing.T, adminRepo *repository.AdminRepository, username, password string) *models.Admin {
	hash, err := HashPassword(password)
	assert.NoError(t, err)

	admin := &models.Admin{Username: username, PasswordHash: hash}
	err = adminRepo.Create(admin)
	assert.NoError(t, err)
	return admin
}

func TestAuthService_AdminLogin(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	admin := createTestAdmin(t, adminRepo, "admin", "admin123")

	token, err := authService.AdminLogin("admin", "admin123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.Authenticate(token, RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, claims.PrincipalID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	createTestAdmin(t, adminRepo, "admin", "admin123")

	_, err := authService.AdminLogin("admin", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_AdminLogin_UnknownUserIndistinguishable(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	createTestAdmin(t, adminRepo, "admin", "admin123")

	_, wrongPassword := authService.AdminLogin("admin", "wrong")
	_, unknownUser := authService.AdminLogin("nobody", "admin123")
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthService_FarmerLogin(t *testing.T) {
	_, farmerRepo, authService := setupAuthTestDB(t)
	farmer := createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	token, loggedIn, err := authService.FarmerLogin("9876543210", "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, farmer.ID, loggedIn.ID)

	claims, err := authService.Authenticate(token, RoleFarmer)
	assert.NoError(t, err)
	assert.Equal(t, farmer.ID, claims.PrincipalID)
}

func TestAuthService_Authenticate_WrongRole(t *testing.T) {
	_, farmerRepo, authService := setupAuthTestDB(t)
	createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	token, _, err := authService.FarmerLogin("9876543210", "secret")
	assert.NoError(t, err)

	_, err = authService.Authenticate(token, RoleAdmin)
	assert.Equal(t, ErrWrongRole, err)
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	admin := createTestAdmin(t, adminRepo, "admin", "admin123")

	token, err := authService.IssueToken(admin.ID, RoleAdmin, -time.Minute)
	assert.NoError(t, err)

	_, err = authService.Authenticate(token, RoleAdmin)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestAuthService_Authenticate_GarbageToken(t *testing.T) {
	_, _, authService := setupAuthTestDB(t)

	_, err := authService.Authenticate("not-a-token", RoleAdmin)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	adminRepo, farmerRepo, authService := setupAuthTestDB(t)
	admin := createTestAdmin(t, adminRepo, "admin", "admin123")

	token, err := authService.IssueToken(admin.ID, RoleAdmin, AdminTokenTTL)
	assert.NoError(t, err)

	other := NewAuthService(adminRepo, farmerRepo, "different-secret")
	_, err = other.Authenticate(token, RoleAdmin)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestAuthService_ChangeAdminPassword(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	admin := createTestAdmin(t, adminRepo, "admin", "admin123")

	err := authService.ChangeAdminPassword(admin.ID, "admin123", "newpass")
	assert.NoError(t, err)

	_, err = authService.AdminLogin("admin", "admin123")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = authService.AdminLogin("admin", "newpass")
	assert.NoError(t, err)
}

func TestAuthService_ChangeAdminPassword_WrongOldPassword(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	admin := createTestAdmin(t, adminRepo, "admin", "admin123")

	err := authService.ChangeAdminPassword(admin.ID, "wrong", "newpass")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_ResetFarmerPassword(t *testing.T) {
	adminRepo, farmerRepo, authService := setupAuthTestDB(t)
	createTestAdmin(t, adminRepo, "admin", "admin123")
	createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	err := authService.ResetFarmerPassword("9876543210", "newpass", "admin123")
	assert.NoError(t, err)

	_, _, err = authService.FarmerLogin("9876543210", "secret")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, _, err = authService.FarmerLogin("9876543210", "newpass")
	assert.NoError(t, err)
}

func TestAuthService_ResetFarmerPassword_WrongAdminPassword(t *testing.T) {
	adminRepo, farmerRepo, authService := setupAuthTestDB(t)
	createTestAdmin(t, adminRepo, "admin", "admin123")
	createTestFarmer(t, farmerRepo, "Ravi", "9876543210")

	err := authService.ResetFarmerPassword("9876543210", "newpass", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_ResetFarmerPassword_FarmerNotFound(t *testing.T) {
	adminRepo, _, authService := setupAuthTestDB(t)
	createTestAdmin(t, adminRepo, "admin", "admin123")

	err := authService.ResetFarmerPassword("0000000000", "newpass", "admin123")
	assert.Equal(t, ErrFarmerNotFound, err)
}
