package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
)

// CatalogController handles the plan catalog, features and coupons
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListPlans lists all plan groups
// @Summary List plans
// @Description Lists every plan group with its purchasable tiers
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Plan} "Plans retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans [get]
func (c *CatalogController) ListPlans(ctx *gin.Context) {
	plans, err := c.catalogService.ListPlans(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      plans,
		Timestamp: time.Now(),
	})
}

// GetPlan retrieves one plan group
// @Summary Get plan by ID
// @Description Retrieves a plan group with its tiers
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=models.Plan} "Plan retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan ID"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [get]
func (c *CatalogController) GetPlan(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.catalogService.GetPlan(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      plan,
		Timestamp: time.Now(),
	})
}

// CreatePlan creates a plan group
// @Summary Create a plan
// @Description Creates a plan group with its tiers (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlanRequest true "Plan information"
// @Success 201 {object} dto.APIResponse{data=models.Plan} "Plan created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans [post]
func (c *CatalogController) CreatePlan(ctx *gin.Context) {
	var req dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	plan := &models.Plan{Type: req.Type, Description: req.Description, Tiers: req.Tiers}
	if err := c.catalogService.CreatePlan(ctx, plan); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      plan,
		Timestamp: time.Now(),
	})
}

// UpdatePlan updates a plan group
// @Summary Update a plan
// @Description Updates a plan group's type and description (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param request body dto.UpdatePlanRequest true "Updated plan information"
// @Success 200 {object} dto.APIResponse{data=models.Plan} "Plan updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [put]
func (c *CatalogController) UpdatePlan(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	plan := &models.Plan{ID: id, Type: req.Type, Description: req.Description}
	if err := c.catalogService.UpdatePlan(ctx, plan); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      plan,
		Timestamp: time.Now(),
	})
}

// DeletePlan removes a plan group
// @Summary Delete a plan
// @Description Removes a plan group and its tiers (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 204 "Plan deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [delete]
func (c *CatalogController) DeletePlan(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeletePlan(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// ListFeatures lists catalog features
// @Summary List features
// @Description Lists the marketable features referenced by plan descriptions
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Feature} "Features retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /features [get]
func (c *CatalogController) ListFeatures(ctx *gin.Context) {
	features, err := c.catalogService.ListFeatures(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      features,
		Timestamp: time.Now(),
	})
}

// CreateFeature adds a catalog feature
// @Summary Create a feature
// @Description Adds a feature to the catalog (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeatureRequest true "Feature information"
// @Success 201 {object} dto.APIResponse{data=models.Feature} "Feature created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 409 {object} dto.ErrorResponse "Feature key already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /features [post]
func (c *CatalogController) CreateFeature(ctx *gin.Context) {
	var req dto.CreateFeatureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feature data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feature := &models.Feature{
		Key:         req.Key,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := c.catalogService.CreateFeature(ctx, feature); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      feature,
		Timestamp: time.Now(),
	})
}

// UpdateFeature edits a catalog feature
// @Summary Update a feature
// @Description Updates a feature's title, description and category (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Param request body dto.UpdateFeatureRequest true "Updated feature information"
// @Success 200 {object} dto.APIResponse{data=models.Feature} "Feature updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 404 {object} dto.ErrorResponse "Feature not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /features/{id} [put]
func (c *CatalogController) UpdateFeature(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateFeatureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feature data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feature := &models.Feature{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := c.catalogService.UpdateFeature(ctx, feature); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      feature,
		Timestamp: time.Now(),
	})
}

// DeleteFeature removes a catalog feature
// @Summary Delete a feature
// @Description Removes a feature from the catalog (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Success 204 "Feature deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid feature ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 404 {object} dto.ErrorResponse "Feature not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /features/{id} [delete]
func (c *CatalogController) DeleteFeature(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteFeature(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// ListCoupons lists all coupons
// @Summary List coupons
// @Description Lists every discount coupon (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Coupon} "Coupons retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coupons [get]
func (c *CatalogController) ListCoupons(ctx *gin.Context) {
	coupons, err := c.catalogService.ListCoupons(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      coupons,
		Timestamp: time.Now(),
	})
}

// CreateCoupon adds a coupon
// @Summary Create a coupon
// @Description Adds a discount coupon (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCouponRequest true "Coupon information"
// @Success 201 {object} dto.APIResponse{data=models.Coupon} "Coupon created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 409 {object} dto.ErrorResponse "Coupon code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coupons [post]
func (c *CatalogController) CreateCoupon(ctx *gin.Context) {
	var req dto.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coupon data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	coupon := &models.Coupon{
		Code:       req.Code,
		PercentOff: req.PercentOff,
		ValidTill:  req.ValidTill,
		IsActive:   req.IsActive,
	}
	if err := c.catalogService.CreateCoupon(ctx, coupon); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      coupon,
		Timestamp: time.Now(),
	})
}

// DeleteCoupon removes a coupon
// @Summary Delete a coupon
// @Description Removes a discount coupon (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coupon ID"
// @Success 204 "Coupon deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid coupon ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 404 {object} dto.ErrorResponse "Coupon not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coupons/{id} [delete]
func (c *CatalogController) DeleteCoupon(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteCoupon(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
