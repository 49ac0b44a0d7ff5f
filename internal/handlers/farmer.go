package handlers

import (
	"errors"
	"net/http"

	"github.com/agrotrack/tractor-tracker/internal/middleware"
	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

type FarmerHandler struct {
	farmerService    *services.FarmerService
	statementService *services.StatementService
}

func NewFarmerHandler(farmerService *services.FarmerService, statementService *services.StatementService) *FarmerHandler {
	return &FarmerHandler{
		farmerService:    farmerService,
		statementService: statementService,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FarmerID uint   `json:"farmerId"`
}

type DashboardResponse struct {
	Success bool           `json:"success"`
	Farmer  *models.Farmer `json:"farmer"`
	Works   []models.Work  `json:"works"`
}

type StatementResponse struct {
	Success   bool                `json:"success"`
	Statement *services.Statement `json:"statement"`
}

// Register godoc
// @Summary Farmer self-registration
// @Tags farmer
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /farmer [post]
func (h *FarmerHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "all fields are required"})
		return
	}

	farmer, err := h.farmerService.CreateFarmer(req.Name, req.Phone, req.Password, nil)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "farmer already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Success:  true,
		Message:  "farmer registered successfully",
		FarmerID: farmer.ID,
	})
}

// Dashboard godoc
// @Summary Farmer dashboard
// @Description The authenticated farmer's profile, payment history and work records
// @Tags farmer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmer/dashboard [get]
func (h *FarmerHandler) Dashboard(c *gin.Context) {
	farmerID := middleware.GetPrincipalID(c)

	dashboard, err := h.farmerService.Dashboard(farmerID)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Success: true,
		Farmer:  dashboard.Farmer,
		Works:   dashboard.Works,
	})
}

// Statement godoc
// @Summary Signed ledger statement
// @Description The authenticated farmer's ledger snapshot, HMAC-signed for offline verification
// @Tags farmer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farmer/statement [get]
func (h *FarmerHandler) Statement(c *gin.Context) {
	farmerID := middleware.GetPrincipalID(c)
	h.respondStatement(c, farmerID)
}

// AdminStatement godoc
// @Summary Signed ledger statement for any farmer
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Farmer ID"
// @Success 200 {object} StatementResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/farmers/{id}/statement [get]
func (h *FarmerHandler) AdminStatement(c *gin.Context) {
	farmerID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}
	h.respondStatement(c, farmerID)
}

func (h *FarmerHandler) respondStatement(c *gin.Context, farmerID uint) {
	statement, err := h.statementService.ExportStatement(farmerID)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, StatementResponse{Success: true, Statement: statement})
}
