package models

import "time"

// ParentInfo holds guardian contact details for a student.
type ParentInfo struct {
	FatherName    string `json:"fatherName,omitempty"`
	MotherName    string `json:"motherName,omitempty"`
	GuardianName  string `json:"guardianName,omitempty"`
	FatherPhone   string `json:"fatherPhone,omitempty"`
	MotherPhone   string `json:"motherPhone,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Fee holds the fee totals tracked per student.
type Fee struct {
	Total    float64 `json:"total"`
	Paid     float64 `json:"paid"`
	Currency string  `json:"currency"`
}

// Student belongs to exactly one institution and exactly one scope entity of
// the variant matching the institution type. RollNo is assigned exactly once
// at enrollment by the allocator and is unique across the whole platform.
type Student struct {
	ID            int64  `json:"id"`
	InstitutionID int64  `json:"institutionId"`
	ClassID       *int64 `json:"classId,omitempty"`
	BatchID       *int64 `json:"batchId,omitempty"`
	CourseID      *int64 `json:"courseId,omitempty"`

	RollNo      *string    `json:"rollNo,omitempty"`
	AdmissionNo string     `json:"admissionNo,omitempty"`
	Name        string     `json:"name"`
	Gender      string     `json:"gender,omitempty"` // male | female | other
	DOB         *time.Time `json:"dob,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Pincode     string     `json:"pincode,omitempty"`

	Parent ParentInfo `json:"parent"`
	Fee    Fee        `json:"fee"`

	PasswordHash  *string       `json:"-"`
	AdmissionDate time.Time     `json:"admissionDate"`
	Status        StudentStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// StudentInput is a candidate record before roll-number allocation. A RollNo
// supplied by the caller (e.g. a spreadsheet column) is ignored and
// overwritten by the allocator.
type StudentInput struct {
	Name        string     `json:"name" binding:"required"`
	RollNo      string     `json:"rollNo,omitempty"`
	AdmissionNo string     `json:"admissionNo,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	DOB         string     `json:"dob,omitempty"` // ISO yyyy-mm-dd, already normalized
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Pincode     string     `json:"pincode,omitempty"`
	Parent      ParentInfo `json:"parent"`
	Fee         Fee        `json:"fee"`
	Status      string     `json:"status,omitempty"`
}
