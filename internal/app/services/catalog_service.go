package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// CatalogService covers the public plan catalog and its admin-managed
// pieces: plan groups with tiers, marketable features and discount coupons.
type CatalogService struct {
	plans    *repositories.PlanRepository
	features *repositories.FeatureRepository
	coupons  *repositories.CouponRepository
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	plans *repositories.PlanRepository,
	features *repositories.FeatureRepository,
	coupons *repositories.CouponRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		plans:    plans,
		features: features,
		coupons:  coupons,
		logger:   logger,
	}
}

// ListPlans returns every plan group with its tiers.
func (s *CatalogService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	return s.plans.GetAll(ctx)
}

// GetPlan returns one plan group with its tiers.
func (s *CatalogService) GetPlan(ctx context.Context, id int64) (*models.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

// GetTier returns a single plan tier.
func (s *CatalogService) GetTier(ctx context.Context, id int64) (*models.PlanTier, error) {
	return s.plans.GetTierByID(ctx, id)
}

// CreatePlan creates a plan group with its tiers (admin only).
func (s *CatalogService) CreatePlan(ctx context.Context, plan *models.Plan) error {
	if plan.Type == "" {
		return apperrors.NewBadRequestError("plan type is required")
	}
	return s.plans.Create(ctx, plan)
}

// UpdatePlan persists plan group edits (admin only).
func (s *CatalogService) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	return s.plans.Update(ctx, plan)
}

// DeletePlan removes a plan group and its tiers (admin only).
func (s *CatalogService) DeletePlan(ctx context.Context, id int64) error {
	return s.plans.Delete(ctx, id)
}

// ListFeatures returns the feature catalog.
func (s *CatalogService) ListFeatures(ctx context.Context) ([]*models.Feature, error) {
	return s.features.GetAll(ctx)
}

// CreateFeature adds a feature to the catalog (admin only).
func (s *CatalogService) CreateFeature(ctx context.Context, feature *models.Feature) error {
	feature.Key = strings.TrimSpace(strings.ToLower(feature.Key))
	if feature.Key == "" || feature.Title == "" {
		return apperrors.NewBadRequestError("feature key and title are required")
	}
	return s.features.Create(ctx, feature)
}

// UpdateFeature persists feature edits (admin only).
func (s *CatalogService) UpdateFeature(ctx context.Context, feature *models.Feature) error {
	return s.features.Update(ctx, feature)
}

// DeleteFeature removes a feature (admin only).
func (s *CatalogService) DeleteFeature(ctx context.Context, id int64) error {
	return s.features.Delete(ctx, id)
}

// ListCoupons returns every coupon (admin only).
func (s *CatalogService) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	return s.coupons.GetAll(ctx)
}

// CreateCoupon adds a coupon (admin only).
func (s *CatalogService) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return apperrors.NewBadRequestError("coupon code is required")
	}
	if coupon.PercentOff < 1 || coupon.PercentOff > 100 {
		return apperrors.NewBadRequestError("percent off must be between 1 and 100")
	}
	return s.coupons.Create(ctx, coupon)
}

// DeleteCoupon removes a coupon (admin only).
func (s *CatalogService) DeleteCoupon(ctx context.Context, id int64) error {
	return s.coupons.Delete(ctx, id)
}

// RedeemableCoupon validates a coupon code at checkout and returns it when
// it is active and unexpired.
func (s *CatalogService) RedeemableCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	if !coupon.IsActive {
		return nil, apperrors.ErrCouponNotFound
	}
	if coupon.ValidTill != nil && coupon.ValidTill.Before(time.Now()) {
		return nil, apperrors.ErrCouponNotFound
	}

	return coupon, nil
}
