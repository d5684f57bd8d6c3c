package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
)

// PortalController handles the student portal
type PortalController struct {
	portalService *services.PortalService
}

// NewPortalController creates a new PortalController
func NewPortalController(portalService *services.PortalService) *PortalController {
	return &PortalController{
		portalService: portalService,
	}
}

// Login authenticates a student
// @Summary Student portal login
// @Description Authenticates a student by roll number and password and returns a portal token
// @Tags portal
// @Accept json
// @Produce json
// @Param request body dto.PortalLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.PortalLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /portal/login [post]
func (c *PortalController) Login(ctx *gin.Context) {
	var req dto.PortalLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, student, err := c.portalService.Login(ctx, req.RollNo, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PortalLoginResponse{Token: token, Student: student},
		Timestamp: time.Now(),
	})
}

// Profile returns the logged-in student's record
// @Summary Get portal profile
// @Description Returns the record of the student behind the portal token
// @Tags portal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /portal/me [get]
func (c *PortalController) Profile(ctx *gin.Context) {
	student, err := c.portalService.Profile(ctx, middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}
