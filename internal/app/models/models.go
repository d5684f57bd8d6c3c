package models

// InstitutionType selects which scope entity students of an institution
// belong to: classes for schools, batches for coaching centers, courses
// for colleges.
type InstitutionType string

const (
	InstitutionTypeSchool   InstitutionType = "school"
	InstitutionTypeCollege  InstitutionType = "college"
	InstitutionTypeCoaching InstitutionType = "coaching"
)

// IsValid reports whether the institution type is one of the known values.
func (t InstitutionType) IsValid() bool {
	switch t {
	case InstitutionTypeSchool, InstitutionTypeCollege, InstitutionTypeCoaching:
		return true
	}
	return false
}

// InstitutionStatus represents the publication state of an institution site.
type InstitutionStatus string

const (
	InstitutionStatusDraft     InstitutionStatus = "draft"
	InstitutionStatusPublished InstitutionStatus = "published"
)

// StudentStatus represents the enrollment state of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)
