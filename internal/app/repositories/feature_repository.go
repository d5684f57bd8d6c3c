package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/dberrors"
)

// FeatureRepository handles database operations for catalog features
type FeatureRepository struct {
	db *pgxpool.Pool
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(db *pgxpool.Pool) *FeatureRepository {
	return &FeatureRepository{
		db: db,
	}
}

// Create creates a new feature
func (r *FeatureRepository) Create(ctx context.Context, feature *models.Feature) error {
	query := `
		INSERT INTO features (key, title, description, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		feature.Key, feature.Title, feature.Description, feature.Category).Scan(
		&feature.ID, &feature.CreatedAt, &feature.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "features_key_key") {
			return apperrors.ErrFeatureKeyExists
		}
		return fmt.Errorf("error creating feature: %w", err)
	}

	return nil
}

// GetAll retrieves all features
func (r *FeatureRepository) GetAll(ctx context.Context) ([]*models.Feature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, key, title, description, category, created_at, updated_at
		FROM features ORDER BY category, key`)
	if err != nil {
		return nil, fmt.Errorf("error listing features: %w", err)
	}
	defer rows.Close()

	var features []*models.Feature
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.ID, &f.Key, &f.Title, &f.Description, &f.Category,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		features = append(features, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return features, nil
}

// Update persists the mutable fields of a feature
func (r *FeatureRepository) Update(ctx context.Context, feature *models.Feature) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE features SET title = $1, description = $2, category = $3, updated_at = NOW()
		WHERE id = $4`,
		feature.Title, feature.Description, feature.Category, feature.ID)
	if err != nil {
		return fmt.Errorf("error updating feature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeatureNotFound
	}

	return nil
}

// Delete removes a feature
func (r *FeatureRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM features WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting feature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeatureNotFound
	}

	return nil
}
