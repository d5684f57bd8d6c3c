package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// PaymentService records plan purchases. Actual capture happens at the
// external gateway; this service creates the order record, prices it from
// the tier's pricing table and applies coupons.
type PaymentService struct {
	payments *repositories.PaymentRepository
	catalog  *CatalogService
	logger   zerolog.Logger
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(payments *repositories.PaymentRepository, catalog *CatalogService, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		catalog:  catalog,
		logger:   logger,
	}
}

// CreateOrder prices a plan tier purchase and records it in created state.
func (s *PaymentService) CreateOrder(ctx context.Context, ownerUserID string, planTierID int64, durationMonths int, couponCode string) (*models.Payment, error) {
	tier, err := s.catalog.GetTier(ctx, planTierID)
	if err != nil {
		return nil, err
	}
	if !tier.IsActive {
		return nil, apperrors.ErrPlanTierNotFound
	}

	var pricing *models.PricingTier
	for i := range tier.Pricing {
		if tier.Pricing[i].DurationMonths == durationMonths {
			pricing = &tier.Pricing[i]
			break
		}
	}
	if pricing == nil {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("no %d month pricing for this plan tier", durationMonths))
	}

	amount := pricing.BasePrice
	if pricing.DiscountPrice > 0 && pricing.DiscountPrice < amount {
		amount = pricing.DiscountPrice
	}

	if couponCode != "" {
		coupon, err := s.catalog.RedeemableCoupon(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		amount = amount * (100 - float64(coupon.PercentOff)) / 100
	}

	currency := pricing.Currency
	if currency == "" {
		currency = "INR"
	}

	payment := &models.Payment{
		OwnerUserID: ownerUserID,
		PlanTierID:  planTierID,
		Amount:      amount,
		Currency:    currency,
		Receipt:     fmt.Sprintf("rcpt_%d_%s", time.Now().Unix(), uuid.New().String()[:8]),
		Status:      models.PaymentStatusCreated,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("paymentId", payment.ID).
		Int64("planTierId", planTierID).
		Float64("amount", amount).
		Msg("Payment order created")

	return payment, nil
}

// Confirm marks an order paid with the gateway's payment id.
func (s *PaymentService) Confirm(ctx context.Context, ownerUserID string, paymentID int64, gatewayPaymentID string) (*models.Payment, error) {
	if _, err := s.payments.GetByID(ctx, paymentID, ownerUserID); err != nil {
		return nil, err
	}

	if err := s.payments.MarkPaid(ctx, paymentID, gatewayPaymentID); err != nil {
		return nil, err
	}

	return s.payments.GetByID(ctx, paymentID, ownerUserID)
}

// History returns the caller's payment records, newest first.
func (s *PaymentService) History(ctx context.Context, ownerUserID string) ([]*models.Payment, error) {
	return s.payments.ListByOwner(ctx, ownerUserID)
}
