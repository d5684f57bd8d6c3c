package dto

// CreateOrderRequest represents a request to start a plan purchase.
type CreateOrderRequest struct {
	PlanTierID     int64  `json:"planTierId" binding:"required"`
	DurationMonths int    `json:"durationMonths" binding:"required" example:"12"`
	CouponCode     string `json:"couponCode,omitempty"`
}

// ConfirmPaymentRequest reports a completed gateway payment.
type ConfirmPaymentRequest struct {
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
}
