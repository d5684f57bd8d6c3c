package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
)

// InstitutionController handles institution site operations
type InstitutionController struct {
	institutionService *services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService *services.InstitutionService) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
	}
}

// SaveDraft creates or updates a draft site
// @Summary Save a draft site
// @Description Creates a new draft institution site or updates an existing one owned by the caller
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveDraftRequest true "Draft site content"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Draft saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [post]
func (c *InstitutionController) SaveDraft(ctx *gin.Context) {
	var req dto.SaveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid draft data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inst, err := c.institutionService.SaveDraft(ctx, middleware.OwnerID(ctx), services.DraftSiteInput{
		ID:           req.ID,
		Name:         req.Name,
		Type:         req.Type,
		SourcePlanID: req.SourcePlanID,
		Tagline:      req.Tagline,
		LogoURL:      req.LogoURL,
		Theme:        req.Theme,
		Contact:      req.Contact,
		Nav:          req.Nav,
		Pages:        req.Pages,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// Publish publishes a draft site
// @Summary Publish a site
// @Description Publishes a draft site, making it publicly reachable under its subdomain
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Site published"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/publish [post]
func (c *InstitutionController) Publish(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	inst, err := c.institutionService.Publish(ctx, middleware.OwnerID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// Mine lists the caller's institutions
// @Summary List my institutions
// @Description Lists the caller's institutions, optionally filtered by plan tier
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planTierId query int false "Filter by plan tier ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Institution} "Institutions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) Mine(ctx *gin.Context) {
	var planTierID *int64
	if raw := ctx.Query("planTierId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan tier ID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		planTierID = &id
	}

	insts, err := c.institutionService.Mine(ctx, middleware.OwnerID(ctx), planTierID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      insts,
		Timestamp: time.Now(),
	})
}

// Get retrieves one of the caller's institutions
// @Summary Get institution by ID
// @Description Retrieves one of the caller's institutions
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	inst, err := c.institutionService.Get(ctx, middleware.OwnerID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// PublicSite serves a published site by subdomain
// @Summary Get public site
// @Description Retrieves a published site's content by subdomain for anonymous rendering
// @Tags public
// @Accept json
// @Produce json
// @Param subdomain path string true "Site subdomain"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Site retrieved"
// @Failure 404 {object} dto.ErrorResponse "Site not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /public/sites/{subdomain} [get]
func (c *InstitutionController) PublicSite(ctx *gin.Context) {
	inst, err := c.institutionService.GetPublicSite(ctx, ctx.Param("subdomain"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      inst,
		Timestamp: time.Now(),
	})
}

// RequestCustomDomain attaches a custom domain to a site
// @Summary Request a custom domain
// @Description Records a custom domain wish and returns the DNS TXT record to publish
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.CustomDomainRequest true "Custom domain"
// @Success 200 {object} dto.APIResponse{data=dto.CustomDomainResponse} "Verification instructions"
// @Failure 400 {object} dto.ErrorResponse "Invalid domain"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Domain already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/custom-domain [post]
func (c *InstitutionController) RequestCustomDomain(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CustomDomainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid domain data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.institutionService.RequestCustomDomain(ctx, middleware.OwnerID(ctx), id, req.Domain)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CustomDomainResponse{
			Domain:   req.Domain,
			TXTName:  "_vidyalaya-verify." + req.Domain,
			TXTValue: token,
			Status:   "pending",
		},
		Timestamp: time.Now(),
	})
}

// VerifyCustomDomain checks the DNS record of a pending custom domain
// @Summary Verify a custom domain
// @Description Looks up the verification TXT record and activates the domain when found
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.CustomDomainVerifyResponse} "Verification result"
// @Failure 400 {object} dto.ErrorResponse "No custom domain requested"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/custom-domain/verify [post]
func (c *InstitutionController) VerifyCustomDomain(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	verified, err := c.institutionService.VerifyCustomDomain(ctx, middleware.OwnerID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := "pending"
	if verified {
		status = "active"
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CustomDomainVerifyResponse{Verified: verified, Status: status},
		Timestamp: time.Now(),
	})
}

// pathID parses an int64 path parameter, writing a 400 response when it is
// not a number.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails("Path parameter must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
