package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// StudentPatch carries the editable fields of a student record. Nil fields
// are left untouched. Roll number is not patchable.
type StudentPatch struct {
	Name        *string
	AdmissionNo *string
	Gender      *string
	DOB         *string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	State       *string
	Pincode     *string
	Parent      *models.ParentInfo
	Fee         *models.Fee
	Status      *string
}

// StudentService covers roster queries and record edits. Enrollment itself
// lives in EnrollmentService.
type StudentService struct {
	students     *repositories.StudentRepository
	institutions *repositories.InstitutionRepository
	enrollment   *EnrollmentService
	logger       zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	students *repositories.StudentRepository,
	institutions *repositories.InstitutionRepository,
	enrollment *EnrollmentService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		students:     students,
		institutions: institutions,
		enrollment:   enrollment,
		logger:       logger,
	}
}

// Institution resolves one of the caller's institutions for roster-level
// operations.
func (s *StudentService) Institution(ctx context.Context, ownerUserID string, institutionID int64) (*models.Institution, error) {
	return s.institutions.GetByIDForOwner(ctx, institutionID, ownerUserID)
}

// ListByScope returns the roster of one scope entity, ordered by roll
// number.
func (s *StudentService) ListByScope(ctx context.Context, ownerUserID string, scopeType models.ScopeType, scopeID int64) ([]*models.Student, error) {
	if _, _, err := s.enrollment.ResolveScope(ctx, ownerUserID, scopeType, scopeID); err != nil {
		return nil, err
	}

	return s.students.ListByScope(ctx, scopeType, scopeID)
}

// SearchByPlan returns a page of students across every institution the
// owner holds under a plan tier, with the owning institution attached.
func (s *StudentService) SearchByPlan(ctx context.Context, ownerUserID string, planTierID int64, q string, offset uint64, limit int) ([]*models.Student, map[int64]*models.Institution, int64, error) {
	insts, err := s.institutions.ListIDsByOwnerAndPlan(ctx, ownerUserID, planTierID)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(insts) == 0 {
		return nil, insts, 0, nil
	}

	ids := make([]int64, 0, len(insts))
	for id := range insts {
		ids = append(ids, id)
	}

	students, total, err := s.students.SearchByInstitutions(ctx, ids, q, offset, limit)
	if err != nil {
		return nil, nil, 0, err
	}

	return students, insts, total, nil
}

// Get returns one student after verifying the caller owns its institution.
func (s *StudentService) Get(ctx context.Context, ownerUserID string, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.institutions.GetByIDForOwner(ctx, student.InstitutionID, ownerUserID); err != nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// Patch applies a partial update to a student record. The roll number
// cannot be changed through this path.
func (s *StudentService) Patch(ctx context.Context, ownerUserID string, id int64, patch StudentPatch) (*models.Student, error) {
	student, err := s.Get(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}

	applyStudentPatch(student, patch)

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

func applyStudentPatch(student *models.Student, patch StudentPatch) {
	if patch.Name != nil && *patch.Name != "" {
		student.Name = *patch.Name
	}
	if patch.AdmissionNo != nil {
		student.AdmissionNo = *patch.AdmissionNo
	}
	if patch.Gender != nil {
		student.Gender = normalizeGender(*patch.Gender)
	}
	if patch.DOB != nil {
		if *patch.DOB == "" {
			student.DOB = nil
		} else if dob, err := time.Parse("2006-01-02", *patch.DOB); err == nil {
			student.DOB = &dob
		}
	}
	if patch.Email != nil {
		student.Email = *patch.Email
	}
	if patch.Phone != nil {
		student.Phone = *patch.Phone
	}
	if patch.Address != nil {
		student.Address = *patch.Address
	}
	if patch.City != nil {
		student.City = *patch.City
	}
	if patch.State != nil {
		student.State = *patch.State
	}
	if patch.Pincode != nil {
		student.Pincode = *patch.Pincode
	}
	if patch.Parent != nil {
		student.Parent = *patch.Parent
	}
	if patch.Fee != nil {
		student.Fee = *patch.Fee
		if student.Fee.Currency == "" {
			student.Fee.Currency = "INR"
		}
	}
	if patch.Status != nil {
		switch models.StudentStatus(*patch.Status) {
		case models.StudentStatusActive, models.StudentStatusInactive:
			student.Status = models.StudentStatus(*patch.Status)
		}
	}
}
