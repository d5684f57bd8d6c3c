package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/auth"
)

// PortalService handles student-portal authentication. Students log in with
// their roll number; an owner sets the password out of band.
type PortalService struct {
	students     *repositories.StudentRepository
	institutions *repositories.InstitutionRepository
	tokens       *auth.PortalTokenService
	logger       zerolog.Logger
}

// NewPortalService creates a new portal service instance
func NewPortalService(
	students *repositories.StudentRepository,
	institutions *repositories.InstitutionRepository,
	tokens *auth.PortalTokenService,
	logger zerolog.Logger,
) *PortalService {
	return &PortalService{
		students:     students,
		institutions: institutions,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login authenticates a student by roll number and password and returns a
// portal token with the student record.
func (s *PortalService) Login(ctx context.Context, rollNo, password string) (string, *models.Student, error) {
	student, err := s.students.GetByRollNo(ctx, rollNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if student.Status != models.StudentStatusActive {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if student.PasswordHash == nil || !auth.CheckPasswordHash(password, *student.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(student.ID, student.InstitutionID, rollNo)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Int64("institutionId", student.InstitutionID).
		Msg("Student portal login")

	return token, student, nil
}

// SetPassword lets an institution owner set or reset a student's portal
// password.
func (s *PortalService) SetPassword(ctx context.Context, ownerUserID string, studentID int64, password string) error {
	if len(password) < 6 {
		return apperrors.NewBadRequestError("password must be at least 6 characters")
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if _, err := s.institutions.GetByIDForOwner(ctx, student.InstitutionID, ownerUserID); err != nil {
		return apperrors.ErrStudentNotFound
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.students.SetPasswordHash(ctx, studentID, hash)
}

// Profile returns the student behind a validated portal token subject.
func (s *PortalService) Profile(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.students.GetByID(ctx, studentID)
}
