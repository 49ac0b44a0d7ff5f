package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agrotrack/tractor-tracker/internal/middleware"
	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService    *services.AuthService
	farmerService  *services.FarmerService
	balanceService *services.BalanceService
	uploadDir      string
}

func NewAdminHandler(authService *services.AuthService, farmerService *services.FarmerService, balanceService *services.BalanceService, uploadDir string) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		farmerService:  farmerService,
		balanceService: balanceService,
		uploadDir:      uploadDir,
	}
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type FarmerResponse struct {
	Success bool           `json:"success"`
	Farmer  *models.Farmer `json:"farmer"`
}

type FarmerListResponse struct {
	Success bool            `json:"success"`
	Farmers []models.Farmer `json:"farmers"`
}

type BalanceResponse struct {
	Success bool                    `json:"success"`
	Balance *services.FarmerBalance `json:"balance"`
}

// ChangePassword godoc
// @Summary Change the administrator password
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/change-password [post]
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	adminID := middleware.GetPrincipalID(c)
	err := h.authService.ChangeAdminPassword(adminID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "old password incorrect"})
		case errors.Is(err, services.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "admin not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CreateFarmer godoc
// @Summary Create a farmer
// @Description Creates a farmer account; accepts multipart form with an optional profile image
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Display name"
// @Param phone formData string true "Unique phone number"
// @Param password formData string true "Initial password"
// @Param profile formData file false "Profile image"
// @Success 200 {object} FarmerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/farmers [post]
func (h *AdminHandler) CreateFarmer(c *gin.Context) {
	name := c.PostForm("name")
	phone := c.PostForm("phone")
	password := c.PostForm("password")
	if name == "" || phone == "" || password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	var profileImage *string
	if file, err := c.FormFile("profile"); err == nil {
		filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
		dst := filepath.Join(h.uploadDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store profile image"})
			return
		}
		path := "/uploads/" + filename
		profileImage = &path
	}

	farmer, err := h.farmerService.CreateFarmer(name, phone, password, profileImage)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhoneExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "farmer already exists"})
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, FarmerResponse{Success: true, Farmer: farmer})
}

// ListFarmers godoc
// @Summary List farmers
// @Description Lists all farmers newest first; password hashes are never included
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FarmerListResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/farmers [get]
func (h *AdminHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.farmerService.ListFarmers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FarmerListResponse{Success: true, Farmers: farmers})
}

// DeleteFarmer godoc
// @Summary Delete a farmer
// @Description Deletes the farmer and cascades to their work records and payments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/farmers/{id} [delete]
func (h *AdminHandler) DeleteFarmer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}

	if err := h.farmerService.DeleteFarmer(id); err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetFarmerBalance godoc
// @Summary Get a farmer's balance
// @Description Outstanding balance recomputed from work and payment totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/farmers/{id}/balance [get]
func (h *AdminHandler) GetFarmerBalance(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}

	balance, err := h.balanceService.FarmerBalance(id)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Success: true, Balance: balance})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	return parseID(c.Param(name))
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
