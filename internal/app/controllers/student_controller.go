package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/models/dto"
	"github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/config"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/helpers"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/importer"
)

// StudentController handles enrollment and roster operations
type StudentController struct {
	enrollmentService *services.EnrollmentService
	studentService    *services.StudentService
	portalService     *services.PortalService
	cfg               *config.Config
}

// NewStudentController creates a new StudentController
func NewStudentController(
	enrollmentService *services.EnrollmentService,
	studentService *services.StudentService,
	portalService *services.PortalService,
	cfg *config.Config,
) *StudentController {
	return &StudentController{
		enrollmentService: enrollmentService,
		studentService:    studentService,
		portalService:     portalService,
		cfg:               cfg,
	}
}

// Summary reports roster size against the plan limit
// @Summary Get student summary
// @Description Reports the current student count of an institution together with its plan capacity limit
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSummaryResponse} "Summary retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/students/summary [get]
func (c *StudentController) Summary(ctx *gin.Context) {
	institutionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	inst, err := c.studentService.Institution(ctx, middleware.OwnerID(ctx), institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	count, limit, err := c.enrollmentService.Summary(ctx, inst)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.StudentSummaryResponse{Count: count, Limit: limit},
		Timestamp: time.Now(),
	})
}

// ListByScope lists the roster of one scope entity
// @Summary List students of a scope
// @Description Lists all students of a class, batch or course, ordered by roll number
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid scope type or ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id}/students [get]
func (c *StudentController) ListByScope(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	students, err := c.studentService.ListByScope(ctx, middleware.OwnerID(ctx), scopeType, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// Add enrolls a single student
// @Summary Add a student
// @Description Enrolls one student into a class, batch or course, allocating a roll number
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Param request body dto.AddStudentRequest true "Student record"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or scope type mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Plan capacity exceeded"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id}/students [post]
func (c *StudentController) Add(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.enrollmentService.Enroll(ctx, middleware.OwnerID(ctx), scopeType, id,
		[]models.StudentInput{req.Student})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      students[0],
		Timestamp: time.Now(),
	})
}

// BulkAdd enrolls a batch of students from JSON
// @Summary Bulk add students
// @Description Enrolls a batch of students, allocating a contiguous block of roll numbers in name order
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Param request body dto.BulkAddStudentsRequest true "Student records"
// @Success 201 {object} dto.APIResponse{data=[]models.Student} "Students enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or empty batch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Plan capacity exceeded"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id}/students/bulk [post]
func (c *StudentController) BulkAdd(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.BulkAddStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.enrollmentService.Enroll(ctx, middleware.OwnerID(ctx), scopeType, id, req.Students)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// Upload parses a roster file and previews the allocation
// @Summary Upload a roster file
// @Description Parses a CSV or XLSX roster and returns the records with projected roll numbers; nothing is persisted until the import is confirmed
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Param file formData file true "Roster file (.csv or .xlsx)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportPreviewResponse} "Preview generated"
// @Failure 400 {object} dto.ErrorResponse "Unreadable file or no usable rows"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id}/students/upload [post]
func (c *StudentController) Upload(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	inst, _, err := c.enrollmentService.ResolveScope(ctx, middleware.OwnerID(ctx), scopeType, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roster file missing")
		errorDetail = errorDetail.WithDetails("Attach the roster as a multipart field named 'file'")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if fileHeader.Size > c.cfg.Import.MaxUploadBytes {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roster file too large")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	parsed, err := importer.Parse(file, fileHeader.Filename)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not parse roster file")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	preview, err := c.enrollmentService.Preview(ctx, inst, parsed.Students)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	total := len(preview)
	truncated := false
	if limit := c.cfg.Import.PreviewLimit; total > limit {
		preview = preview[:limit]
		truncated = true
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ImportPreviewResponse{
			Students:  preview,
			Total:     total,
			Truncated: truncated,
			Warnings:  parsed.Warnings,
		},
		Timestamp: time.Now(),
	})
}

// ConfirmImport enrolls previously previewed records
// @Summary Confirm a roster import
// @Description Enrolls the previewed records; roll numbers are re-allocated here and may differ from the preview
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scopeType path string true "Scope type" Enums(class,batch,course)
// @Param id path int true "Scope ID"
// @Param request body dto.ConfirmImportRequest true "Previewed records"
// @Success 201 {object} dto.APIResponse{data=[]models.Student} "Students enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or empty batch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Plan capacity exceeded"
// @Failure 404 {object} dto.ErrorResponse "Scope not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scopes/{scopeType}/{id}/students/confirm [post]
func (c *StudentController) ConfirmImport(ctx *gin.Context) {
	scopeType, ok := scopeTypeParam(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ConfirmImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.enrollmentService.Enroll(ctx, middleware.OwnerID(ctx), scopeType, id, req.Students)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// ByPlan searches students across a plan's institutions
// @Summary List students by plan
// @Description Returns a page of students across every institution the caller holds under a plan tier
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan tier ID"
// @Param q query string false "Free-text filter over name, email, phone, admission and roll numbers"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan tier ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id}/students [get]
func (c *StudentController) ByPlan(ctx *gin.Context) {
	planTierID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, insts, total, err := c.studentService.SearchByPlan(
		ctx, middleware.OwnerID(ctx), planTierID, ctx.Query("q"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.StudentWithInstitution, 0, len(students))
	for _, s := range students {
		item := dto.StudentWithInstitution{Student: s}
		if inst, ok := insts[s.InstitutionID]; ok {
			item.InstitutionName = inst.Name
			item.InstitutionType = inst.Type
		}
		items = append(items, item)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PagedResponse{
			Items:      items,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// Get retrieves a single student
// @Summary Get student by ID
// @Description Retrieves one student of an institution the caller owns
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx, middleware.OwnerID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// Patch applies a partial update to a student
// @Summary Update a student
// @Description Applies a partial update to a student record; the roll number cannot be changed
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.PatchStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [patch]
func (c *StudentController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.PatchStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.Patch(ctx, middleware.OwnerID(ctx), id, services.StudentPatch{
		Name:        req.Name,
		AdmissionNo: req.AdmissionNo,
		Gender:      req.Gender,
		DOB:         req.DOB,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Parent:      req.Parent,
		Fee:         req.Fee,
		Status:      req.Status,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// SetPassword sets a student's portal password
// @Summary Set student portal password
// @Description Sets or resets the password a student uses for portal login
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.SetStudentPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/password [put]
func (c *StudentController) SetPassword(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetStudentPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid password data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.portalService.SetPassword(ctx, middleware.OwnerID(ctx), id, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Password updated"},
		Timestamp: time.Now(),
	})
}
