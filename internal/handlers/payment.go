package handlers

import (
	"errors"
	"net/http"

	"github.com/agrotrack/tractor-tracker/internal/models"
	"github.com/agrotrack/tractor-tracker/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	WorkID *uint           `json:"workId"`
}

type PaymentResponse struct {
	Success bool            `json:"success"`
	Payment *models.Payment `json:"payment"`
}

type PaymentListResponse struct {
	Success  bool             `json:"success"`
	Payments []models.Payment `json:"payments"`
}

// AddPayment godoc
// @Summary Record a payment to a farmer
// @Description Appends a payment; when attributed to a work record, its amount-paid is incremented in the same transaction
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param farmerId path int true "Farmer ID"
// @Param request body AddPaymentRequest true "Payment details"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/payment/{farmerId} [post]
func (h *PaymentHandler) AddPayment(c *gin.Context) {
	farmerID, err := parseIDParam(c, "farmerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	payment, err := h.paymentService.AddPayment(farmerID, req.Amount, req.WorkID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{Success: true, Payment: payment})
}

// RemovePayment godoc
// @Summary Remove a payment
// @Description Deletes the payment and reverses the attributed work's amount-paid; unknown payment ids are a no-op
// @Tags payment
// @Produce json
// @Security BearerAuth
// @Param farmerId path int true "Farmer ID"
// @Param paymentId path int true "Payment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/payment/{farmerId}/{paymentId} [delete]
func (h *PaymentHandler) RemovePayment(c *gin.Context) {
	farmerID, err := parseIDParam(c, "farmerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}

	paymentID, err := parseIDParam(c, "paymentId")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment id"})
		return
	}

	if err := h.paymentService.RemovePayment(farmerID, paymentID); err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ListPayments godoc
// @Summary List a farmer's payments
// @Tags payment
// @Produce json
// @Security BearerAuth
// @Param farmerId path int true "Farmer ID"
// @Success 200 {object} PaymentListResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/payment/{farmerId} [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	farmerID, err := parseIDParam(c, "farmerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid farmer id"})
		return
	}

	payments, err := h.paymentService.ListPayments(farmerID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentListResponse{Success: true, Payments: payments})
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be positive"})
	case errors.Is(err, services.ErrFarmerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "farmer not found"})
	case errors.Is(err, services.ErrWorkNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "work not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
