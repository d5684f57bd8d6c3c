package dto

import (
	"time"

	"github.com/vidyalayahq/vidyalaya/internal/app/models"
)

// CreatePlanRequest represents a request to create a plan group with tiers.
type CreatePlanRequest struct {
	Type        string            `json:"type" binding:"required" example:"Coaching"`
	Description string            `json:"description,omitempty"`
	Tiers       []models.PlanTier `json:"tiers,omitempty"`
}

// UpdatePlanRequest represents a plan group edit.
type UpdatePlanRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description,omitempty"`
}

// CreateFeatureRequest represents a request to add a catalog feature.
type CreateFeatureRequest struct {
	Key         string `json:"key" binding:"required" example:"online-tests"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UpdateFeatureRequest represents a feature edit. The key is immutable.
type UpdateFeatureRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// CreateCouponRequest represents a request to add a discount coupon.
type CreateCouponRequest struct {
	Code       string     `json:"code" binding:"required" example:"LAUNCH25"`
	PercentOff int        `json:"percentOff" binding:"required,min=1,max=100"`
	ValidTill  *time.Time `json:"validTill,omitempty"`
	IsActive   bool       `json:"isActive"`
}
