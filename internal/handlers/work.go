package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WorkHandler struct {
	workService *services.WorkService
}

func NewWorkHandler(workService *services.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// CreateWorkRequest takes the duration either as a raw minute count or as
// an hours.minutes string ("2.30" = 2h30m) in timeStr.
type CreateWorkRequest struct {
	FarmerID  uint            `json:"farmerId" binding:"required"`
	WorkType  string          `json:"workType" binding:"required"`
	Minutes   int             `json:"minutes"`
	TimeStr   string          `json:"timeStr"`
	RatePer60 decimal.Decimal `json:"ratePer60"`
	Notes     string          `json:"notes"`
}

type UpdateWorkRequest struct {
	WorkType  string          `json:"workType" binding:"required"`
	Minutes   int             `json:"minutes"`
	TimeStr   string          `json:"timeStr"`
	RatePer60 decimal.Decimal `json:"ratePer60"`
	Notes     string          `json:"notes"`
}

type WorkResponse struct {
	Success bool          `json:"success"`
	Work    *WorkListItem `json:"work"`
}

type WorkListResponse struct {
	Success bool           `json:"success"`
	Works   []WorkListItem `json:"works"`
}

// WorkListItem joins the work record with minimal farmer identity for
// display.
type WorkListItem struct {
	ID          uint            `json:"id"`
	FarmerID    uint            `json:"farmer_id"`
	FarmerName  string          `json:"farmer_name"`
	FarmerPhone string          `json:"farmer_phone"`
	WorkType    string          `json:"work_type"`
	Minutes     int             `json:"minutes"`
	RatePer60   decimal.Decimal `json:"rate_per_60"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	CreatedAt   string          `json:"created_at"`
}

func toWorkListItem(w models.Work) WorkListItem {
	return WorkListItem{
		ID:          w.ID,
		FarmerID:    w.FarmerID,
		FarmerName:  w.Farmer.Name,
		FarmerPhone: w.Farmer.Phone,
		WorkType:    w.WorkType,
		Minutes:     w.Minutes,
		RatePer60:   w.RatePer60,
		TotalAmount: w.TotalAmount,
		Notes:       w.Notes,
		AmountPaid:  w.AmountPaid,
		CreatedAt:   w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func resolveMinutes(minutes int, timeStr string) (int, error) {
	if minutes == 0 && timeStr != "" {
		return services.ParseDuration(timeStr)
	}
	return minutes, nil
}

// CreateWork godoc
// @Summary Record work performed
// @Description Records a unit of labor; total amount is derived from duration and rate
// @Tags work
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWorkRequest true "Work details"
// @Success 200 {object} WorkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/work [post]
func (h *WorkHandler) CreateWork(c *gin.Context) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	minutes, err := resolveMinutes(req.Minutes, req.TimeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid duration"})
		return
	}

	work, err := h.workService.CreateWork(req.FarmerID, req.WorkType, minutes, req.RatePer60, req.Notes)
	if err != nil {
		respondWorkError(c, err)
		return
	}

	item := toWorkListItem(*work)
	c.JSON(http.StatusOK, WorkResponse{Success: true, Work: &item})
}

// UpdateWork godoc
// @Summary Update a work record
// @Description Updates fields and recomputes the total; amount paid is untouched
// @Tags work
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Work ID"
// @Param request body UpdateWorkRequest true "Updated fields"
// @Success 200 {object} WorkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/work/{id} [put]
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid work id"})
		return
	}

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	minutes, err := resolveMinutes(req.Minutes, req.TimeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid duration"})
		return
	}

	work, err := h.workService.UpdateWork(id, req.WorkType, minutes, req.RatePer60, req.Notes)
	if err != nil {
		respondWorkError(c, err)
		return
	}

	item := toWorkListItem(*work)
	c.JSON(http.StatusOK, WorkResponse{Success: true, Work: &item})
}

// DeleteWork godoc
// @Summary Delete a work record
// @Tags work
// @Produce json
// @Security BearerAuth
// @Param id path int true "Work ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/work/{id} [delete]
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid work id"})
		return
	}

	if err := h.workService.DeleteWork(id); err != nil {
		respondWorkError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ListWork godoc
// @Summary List work records
// @Description Lists work newest first, optionally filtered by farmer
// @Tags work
// @Produce json
// @Security BearerAuth
// @Param farmerId query int false "Filter by farmer"
// @Success 200 {object} WorkListResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/work [get]
func (h *WorkHandler) ListWork(c *gin.Context) {
	var farmerID *uint
	if farmerIDStr := c.Query("farmerId"); farmerIDStr != "" {
		id, err := parseID(farmerIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
			return
		}
		farmerID = &id
	}

	works, err := h.workService.ListWork(farmerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]WorkListItem, len(works))
	for i, w := range works {
		items[i] = toWorkListItem(w)
	}

	c.JSON(http.StatusOK, WorkListResponse{Success: true, Works: items})
}

func respondWorkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidMinutes), errors.Is(err, services.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrFarmerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
	case errors.Is(err, services.ErrWorkNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "work not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
