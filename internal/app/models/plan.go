package models

import "time"

// PricingTier is one duration/price option of a plan tier.
type PricingTier struct {
	DurationMonths int     `json:"durationMonths"`
	BasePrice      float64 `json:"basePrice"`
	DiscountPrice  float64 `json:"discountPrice,omitempty"`
	Currency       string  `json:"currency"`
}

// PlanTier is an individual purchasable plan within a plan group.
// MaxStudents, when set, is the capacity limit applied to institutions
// created under this tier; nil means unlimited.
type PlanTier struct {
	ID          int64         `json:"id"`
	PlanID      int64         `json:"planId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"isActive"`
	MaxStudents *int64        `json:"maxStudents,omitempty"`
	Pricing     []PricingTier `json:"pricing"`
}

// Plan groups the tiers offered for one institution type.
type Plan struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"` // e.g. "Coaching"
	Description string     `json:"description,omitempty"`
	Tiers       []PlanTier `json:"tiers,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Feature is a marketable capability referenced by plan descriptions.
type Feature struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Coupon is a discount code applied at checkout.
type Coupon struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	PercentOff int        `json:"percentOff"`
	ValidTill  *time.Time `json:"validTill,omitempty"`
	IsActive   bool       `json:"isActive"`
}
