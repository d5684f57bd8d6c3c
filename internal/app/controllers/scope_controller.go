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

// ScopeController handles class, batch and course operations. The variant
// comes from the :scopeType path segment and must match the institution
// type.
type ScopeController struct {
	scopeService *services.ScopeService
}

// NewScopeController creates a new ScopeController
func NewScopeController(scopeService *services.ScopeService) *ScopeController {
	return &ScopeController{
		scopeService: scopeService,
	}
}

// scopeTypeParam parses the :scopeType path segment.
func scopeTypeParam(ctx *gin.Context) (models.ScopeType, bool) {
	scopeType := models.ScopeType(ctx.Param("scopeType"))
	if !scopeType.IsValid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scope type")
		errorDetail = errorDetail.WithDetails("Scope type must be class, batch or course")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return scopeType, true
}

// Create creates a scope entity
// @Summary Create a class, batch or course
// @Description Creates a scope entity of the variant matching the institution type
// @Tags scopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param request body dto.CreateScopeRequest true "Scope information"
// @Success 201 {object} dto.APIResponse{data=models.Scope} "Scope created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or scope type mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType} [post]
func (c *ScopeController) Create(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateScopeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scope data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	scope, err := c.scopeService.Create(ctx, middleware.OwnerID(ctx), scopeType, services.ScopeInput{
		InstitutionID:  req.InstitutionID,
		Name:           req.Name,
		Section:        req.Section,
		Timing:         req.Timing,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      scope,
		Timestamp: time.Now(),
	})
}

// List lists the scopes of an institution
// @Summary List scopes
// @Description Lists all classes, batches or courses of an institution
// @Tags scopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Scope} "Scopes retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/scopes [get]
func (c *ScopeController) List(ctx *gin.Context) {
	institutionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	scopes, err := c.scopeService.List(ctx, middleware.OwnerID(ctx), institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scopes,
		Timestamp: time.Now(),
	})
}

// Delete removes a scope entity
// @Summary Delete a class, batch or course
// @Description Removes a scope entity; students under it keep their records
// @Tags scopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Success 204 "Scope deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid scope type or ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id} [delete]
func (c *ScopeController) Delete(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.scopeService.Delete(ctx, middleware.OwnerID(ctx), scopeType, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
