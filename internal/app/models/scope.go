package models

// ScopeType identifies the grouping variant a student belongs to.
type ScopeType string

const (
	ScopeTypeClass  ScopeType = "class"
	ScopeTypeBatch  ScopeType = "batch"
	ScopeTypeCourse ScopeType = "course"
)

// IsValid reports whether the scope type is one of the known values.
func (t ScopeType) IsValid() bool {
	switch t {
	case ScopeTypeClass, ScopeTypeBatch, ScopeTypeCourse:
		return true
	}
	return false
}

// ScopeTypeFor returns the scope variant matching an institution type.
func ScopeTypeFor(t InstitutionType) ScopeType {
	switch t {
	case InstitutionTypeSchool:
		return ScopeTypeClass
	case InstitutionTypeCoaching:
		return ScopeTypeBatch
	case InstitutionTypeCollege:
		return ScopeTypeCourse
	}
	return ""
}

// SchoolClass is the scope entity for school-type institutions.
type SchoolClass struct {
	ID            int64  `json:"id"`
	InstitutionID int64  `json:"institutionId"`
	Name          string `json:"name"`
	Section       string `json:"section,omitempty"`
}

// Batch is the scope entity for coaching-type institutions.
type Batch struct {
	ID            int64  `json:"id"`
	InstitutionID int64  `json:"institutionId"`
	Name          string `json:"name"`
	Timing        string `json:"timing,omitempty"`
}

// Course is the scope entity for college-type institutions.
type Course struct {
	ID             int64  `json:"id"`
	InstitutionID  int64  `json:"institutionId"`
	Name           string `json:"name"`
	DurationMonths int    `json:"durationMonths,omitempty"`
}

// Scope is a variant-independent view of a class, batch or course, used by
// the enrollment flow which does not care which table the grouping lives in.
type Scope struct {
	Type          ScopeType `json:"type"`
	ID            int64     `json:"id"`
	InstitutionID int64     `json:"institutionId"`
	Name          string    `json:"name"`
	Extra         string    `json:"extra,omitempty"` // section, timing or duration
}
