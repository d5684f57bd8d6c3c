package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
)

// PaymentController handles plan purchase operations
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateOrder starts a plan purchase
// @Summary Create a payment order
// @Description Prices a plan tier purchase, applies an optional coupon and records the order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Order information"
// @Success 201 {object} dto.APIResponse{data=models.Payment} "Order created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Plan tier or coupon not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid order data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	payment, err := c.paymentService.CreateOrder(ctx, middleware.OwnerID(ctx),
		req.PlanTierID, req.DurationMonths, req.CouponCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// Confirm marks an order paid
// @Summary Confirm a payment
// @Description Records the gateway payment id and flips the order to paid
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.ConfirmPaymentRequest true "Gateway payment reference"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment confirmed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id}/confirm [post]
func (c *PaymentController) Confirm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	payment, err := c.paymentService.Confirm(ctx, middleware.OwnerID(ctx), id, req.GatewayPaymentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// History lists the caller's payments
// @Summary List payment history
// @Description Lists the caller's payment records, newest first
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [get]
func (c *PaymentController) History(ctx *gin.Context) {
	payments, err := c.paymentService.History(ctx, middleware.OwnerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payments,
		Timestamp: time.Now(),
	})
}
