package models

import "time"

// PaymentStatus tracks the lifecycle of a gateway order.
type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is a record of a plan purchase. Capture and signature verification
// happen at the external gateway; this row only mirrors its state.
type Payment struct {
	ID               int64         `json:"id"`
	OwnerUserID      string        `json:"ownerUserId"`
	PlanTierID       int64         `json:"planTierId"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency"`
	Receipt          string        `json:"receipt"`
	GatewayOrderID   string        `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string        `json:"gatewayPaymentId,omitempty"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
