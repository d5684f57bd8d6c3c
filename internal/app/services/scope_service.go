package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// ScopeInput carries the fields for creating a scope entity. Extra is the
// section, timing or duration-in-months depending on the variant.
type ScopeInput struct {
	InstitutionID  int64
	Name           string
	Section        string
	Timing         string
	DurationMonths int
}

// ScopeService manages classes, batches and courses under institutions.
type ScopeService struct {
	scopes       *repositories.ScopeRepository
	institutions *repositories.InstitutionRepository
	logger       zerolog.Logger
}

// NewScopeService creates a new scope service instance
func NewScopeService(scopes *repositories.ScopeRepository, institutions *repositories.InstitutionRepository, logger zerolog.Logger) *ScopeService {
	return &ScopeService{
		scopes:       scopes,
		institutions: institutions,
		logger:       logger,
	}
}

// Create adds a scope entity of the variant matching the institution type.
// Requesting a variant that does not match the institution type is rejected.
func (s *ScopeService) Create(ctx context.Context, ownerUserID string, scopeType models.ScopeType, in ScopeInput) (*models.Scope, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidationFailed)
	}

	inst, err := s.institutions.GetByIDForOwner(ctx, in.InstitutionID, ownerUserID)
	if err != nil {
		return nil, err
	}

	if models.ScopeTypeFor(inst.Type) != scopeType {
		return nil, apperrors.ErrScopeTypeMismatch
	}

	scope := &models.Scope{Type: scopeType, InstitutionID: inst.ID, Name: in.Name}
	switch scopeType {
	case models.ScopeTypeClass:
		class := &models.SchoolClass{InstitutionID: inst.ID, Name: in.Name, Section: in.Section}
		if err := s.scopes.CreateClass(ctx, class); err != nil {
			return nil, err
		}
		scope.ID = class.ID
		scope.Extra = class.Section
	case models.ScopeTypeBatch:
		batch := &models.Batch{InstitutionID: inst.ID, Name: in.Name, Timing: in.Timing}
		if err := s.scopes.CreateBatch(ctx, batch); err != nil {
			return nil, err
		}
		scope.ID = batch.ID
		scope.Extra = batch.Timing
	case models.ScopeTypeCourse:
		course := &models.Course{InstitutionID: inst.ID, Name: in.Name, DurationMonths: in.DurationMonths}
		if err := s.scopes.CreateCourse(ctx, course); err != nil {
			return nil, err
		}
		scope.ID = course.ID
	default:
		return nil, fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	s.logger.Info().
		Int64("institutionId", inst.ID).
		Str("scope", string(scopeType)).
		Int64("scopeId", scope.ID).
		Msg("Scope created")

	return scope, nil
}

// List returns all scopes of the institution's variant.
func (s *ScopeService) List(ctx context.Context, ownerUserID string, institutionID int64) ([]*models.Scope, error) {
	inst, err := s.institutions.GetByIDForOwner(ctx, institutionID, ownerUserID)
	if err != nil {
		return nil, err
	}

	return s.scopes.ListScopes(ctx, models.ScopeTypeFor(inst.Type), inst.ID)
}

// Delete removes a scope after verifying the caller owns its institution.
func (s *ScopeService) Delete(ctx context.Context, ownerUserID string, scopeType models.ScopeType, id int64) error {
	scope, err := s.scopes.GetScope(ctx, scopeType, id)
	if err != nil {
		return err
	}

	if _, err := s.institutions.GetByIDForOwner(ctx, scope.InstitutionID, ownerUserID); err != nil {
		return apperrors.ErrScopeNotFound
	}

	return s.scopes.DeleteScope(ctx, scopeType, id)
}
