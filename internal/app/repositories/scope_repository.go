package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// ScopeRepository handles database operations for the three scope variants:
// school classes, coaching batches and college courses.
type ScopeRepository struct {
	db *pgxpool.Pool
}

// NewScopeRepository creates a new scope repository
func NewScopeRepository(db *pgxpool.Pool) *ScopeRepository {
	return &ScopeRepository{
		db: db,
	}
}

// CreateClass creates a new school class
func (r *ScopeRepository) CreateClass(ctx context.Context, class *models.SchoolClass) error {
	query := `
		INSERT INTO school_classes (institution_id, name, section)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, class.InstitutionID, class.Name, class.Section).Scan(&class.ID)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// CreateBatch creates a new coaching batch
func (r *ScopeRepository) CreateBatch(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (institution_id, name, timing)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, batch.InstitutionID, batch.Name, batch.Timing).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("error creating batch: %w", err)
	}

	return nil
}

// CreateCourse creates a new college course
func (r *ScopeRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (institution_id, name, duration_months)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, course.InstitutionID, course.Name, course.DurationMonths).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetScope resolves a scope of any variant into the variant-independent view.
// Returns apperrors.ErrScopeNotFound when no row exists under the id.
func (r *ScopeRepository) GetScope(ctx context.Context, scopeType models.ScopeType, id int64) (*models.Scope, error) {
	var query string
	switch scopeType {
	case models.ScopeTypeClass:
		query = `SELECT id, institution_id, name, COALESCE(section, '') FROM school_classes WHERE id = $1`
	case models.ScopeTypeBatch:
		query = `SELECT id, institution_id, name, COALESCE(timing, '') FROM batches WHERE id = $1`
	case models.ScopeTypeCourse:
		query = `SELECT id, institution_id, name, duration_months::text FROM courses WHERE id = $1`
	default:
		return nil, fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	scope := models.Scope{Type: scopeType}
	err := r.db.QueryRow(ctx, query, id).Scan(&scope.ID, &scope.InstitutionID, &scope.Name, &scope.Extra)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScopeNotFound
		}
		return nil, fmt.Errorf("error retrieving scope: %w", err)
	}

	return &scope, nil
}

// ListScopes retrieves all scopes of a variant under an institution.
func (r *ScopeRepository) ListScopes(ctx context.Context, scopeType models.ScopeType, institutionID int64) ([]*models.Scope, error) {
	var query string
	switch scopeType {
	case models.ScopeTypeClass:
		query = `SELECT id, institution_id, name, COALESCE(section, '') FROM school_classes WHERE institution_id = $1 ORDER BY name`
	case models.ScopeTypeBatch:
		query = `SELECT id, institution_id, name, COALESCE(timing, '') FROM batches WHERE institution_id = $1 ORDER BY name`
	case models.ScopeTypeCourse:
		query = `SELECT id, institution_id, name, duration_months::text FROM courses WHERE institution_id = $1 ORDER BY name`
	default:
		return nil, fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, fmt.Errorf("error listing scopes: %w", err)
	}
	defer rows.Close()

	var scopes []*models.Scope
	for rows.Next() {
		scope := models.Scope{Type: scopeType}
		if err := rows.Scan(&scope.ID, &scope.InstitutionID, &scope.Name, &scope.Extra); err != nil {
			return nil, err
		}
		scopes = append(scopes, &scope)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scopes, nil
}

// DeleteScope removes a scope of any variant. Students under the scope keep
// their rows; the foreign key is set null by the schema.
func (r *ScopeRepository) DeleteScope(ctx context.Context, scopeType models.ScopeType, id int64) error {
	var query string
	switch scopeType {
	case models.ScopeTypeClass:
		query = `DELETE FROM school_classes WHERE id = $1`
	case models.ScopeTypeBatch:
		query = `DELETE FROM batches WHERE id = $1`
	case models.ScopeTypeCourse:
		query = `DELETE FROM courses WHERE id = $1`
	default:
		return fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting scope: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScopeNotFound
	}

	return nil
}
