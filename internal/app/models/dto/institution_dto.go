package dto

import (
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
)

// SaveDraftRequest represents a request to create or update a draft site.
// A zero ID creates a new draft.
type SaveDraftRequest struct {
	ID           int64                  `json:"id,omitempty"`
	Name         string                 `json:"name" binding:"required"`
	Type         models.InstitutionType `json:"type" binding:"required" example:"school" enums:"school,college,coaching"`
	SourcePlanID *int64                 `json:"sourcePlanId,omitempty"`
	Tagline      string                 `json:"tagline,omitempty"`
	LogoURL      string                 `json:"logoUrl,omitempty"`
	Theme        *models.Theme          `json:"theme,omitempty"`
	Contact      *models.Contact        `json:"contact,omitempty"`
	Nav          []models.NavItem       `json:"nav,omitempty"`
	Pages        []models.Page          `json:"pages,omitempty"`
}

// CustomDomainRequest represents a request to attach a custom domain.
type CustomDomainRequest struct {
	Domain string `json:"domain" binding:"required" example:"www.stmarys.edu.in"`
}

// CustomDomainResponse carries the DNS verification instructions.
type CustomDomainResponse struct {
	Domain   string `json:"domain"`
	TXTName  string `json:"txtName" example:"_vidyalaya-verify.www.stmarys.edu.in"`
	TXTValue string `json:"txtValue"`
	Status   string `json:"status" example:"pending"`
}

// CustomDomainVerifyResponse reports the outcome of a verification attempt.
type CustomDomainVerifyResponse struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}
