package dto

// CreateScopeRequest represents a request to create a class, batch or
// course. Section, timing and durationMonths apply to their respective
// variants and are ignored otherwise.
type CreateScopeRequest struct {
	InstitutionID  int64  `json:"institutionId" binding:"required"`
	Name           string `json:"name" binding:"required" example:"Class 10"`
	Section        string `json:"section,omitempty" example:"A"`
	Timing         string `json:"timing,omitempty" example:"6-8 PM"`
	DurationMonths int    `json:"durationMonths,omitempty" example:"36"`
}
