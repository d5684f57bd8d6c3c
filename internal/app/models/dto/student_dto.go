package dto

import (
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
)

// AddStudentRequest represents a single enrollment.
type AddStudentRequest struct {
	Student models.StudentInput `json:"student" binding:"required"`
}

// BulkAddStudentsRequest represents a JSON bulk enrollment.
type BulkAddStudentsRequest struct {
	Students []models.StudentInput `json:"students" binding:"required"`
}

// ConfirmImportRequest carries previewed rows back for actual enrollment.
type ConfirmImportRequest struct {
	Students []models.StudentInput `json:"students" binding:"required"`
}

// ImportPreviewResponse is the projection returned by a roster file upload.
// Roll numbers shown here are provisional until the import is confirmed.
type ImportPreviewResponse struct {
	Students  []models.StudentInput `json:"students"`
	Total     int                   `json:"total"`
	Truncated bool                  `json:"truncated"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// StudentSummaryResponse reports the roster size against the plan limit.
type StudentSummaryResponse struct {
	Count int64  `json:"count"`
	Limit *int64 `json:"limit,omitempty"`
}

// StudentWithInstitution decorates a student with its owning institution
// for cross-institution roster listings.
type StudentWithInstitution struct {
	*models.Student
	InstitutionName string                 `json:"institutionName"`
	InstitutionType models.InstitutionType `json:"institutionType"`
}

// PatchStudentRequest represents a partial student update. Omitted fields
// are left untouched; the roll number cannot be changed.
type PatchStudentRequest struct {
	Name        *string            `json:"name,omitempty"`
	AdmissionNo *string            `json:"admissionNo,omitempty"`
	Gender      *string            `json:"gender,omitempty"`
	DOB         *string            `json:"dob,omitempty" example:"2008-04-17"`
	Email       *string            `json:"email,omitempty"`
	Phone       *string            `json:"phone,omitempty"`
	Address     *string            `json:"address,omitempty"`
	City        *string            `json:"city,omitempty"`
	State       *string            `json:"state,omitempty"`
	Pincode     *string            `json:"pincode,omitempty"`
	Parent      *models.ParentInfo `json:"parent,omitempty"`
	Fee         *models.Fee        `json:"fee,omitempty"`
	Status      *string            `json:"status,omitempty" enums:"active,inactive"`
}

// SetStudentPasswordRequest lets an owner set a student's portal password.
type SetStudentPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}
