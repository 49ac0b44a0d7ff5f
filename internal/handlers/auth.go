package handlers

import (
	"errors"
	"net/http"

	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type FarmerLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FarmerLoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	FarmerID uint   `json:"farmerId"`
	Name     string `json:"name"`
}

type ForgotPasswordRequest struct {
	Phone         string `json:"phone" binding:"required"`
	NewPassword   string `json:"newPassword" binding:"required"`
	AdminPassword string `json:"adminPassword" binding:"required"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AdminLogin godoc
// @Summary Administrator login
// @Description Exchange admin credentials for a 12h bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Credentials"
// @Success 200 {object} AdminLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing credentials"})
		return
	}

	token, err := h.authService.AdminLogin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AdminLoginResponse{Success: true, Token: token})
}

// FarmerLogin godoc
// @Summary Farmer login
// @Description Exchange farmer phone + password for a 7d bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body FarmerLoginRequest true "Credentials"
// @Success 200 {object} FarmerLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/farmer/login [post]
func (h *AuthHandler) FarmerLogin(c *gin.Context) {
	var req FarmerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing credentials"})
		return
	}

	token, farmer, err := h.authService.FarmerLogin(req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FarmerLoginResponse{
		Success:  true,
		Token:    token,
		FarmerID: farmer.ID,
		Name:     farmer.Name,
	})
}

// ForgotPassword godoc
// @Summary Reset a farmer's password
// @Description Resets a farmer's password; the admin password is the elevated-privilege gate
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Reset request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/farmer/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "all fields are required"})
		return
	}

	err := h.authService.ResetFarmerPassword(req.Phone, req.NewPassword, req.AdminPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid admin password"})
		case errors.Is(err, services.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "admin not found"})
		case errors.Is(err, services.ErrFarmerNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "farmer password changed successfully"})
}
