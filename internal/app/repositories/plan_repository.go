package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// PlanRepository handles database operations for plans and their tiers
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
	}
}

// Create creates a new plan group with its tiers
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO plans (type, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		plan.Type, plan.Description).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating plan: %w", err)
	}

	for i := range plan.Tiers {
		plan.Tiers[i].PlanID = plan.ID
		if err := r.CreateTier(ctx, &plan.Tiers[i]); err != nil {
			return err
		}
	}

	return nil
}

// CreateTier creates a single tier under an existing plan
func (r *PlanRepository) CreateTier(ctx context.Context, tier *models.PlanTier) error {
	pricing, err := json.Marshal(tier.Pricing)
	if err != nil {
		return fmt.Errorf("error encoding pricing: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO plan_tiers (plan_id, name, description, is_active, max_students, pricing)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		tier.PlanID, tier.Name, tier.Description, tier.IsActive, tier.MaxStudents, pricing).Scan(&tier.ID)
	if err != nil {
		return fmt.Errorf("error creating plan tier: %w", err)
	}

	return nil
}

// GetByID retrieves a plan with its tiers
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.QueryRow(ctx,
		`SELECT id, type, description, created_at, updated_at FROM plans WHERE id = $1`, id).Scan(
		&plan.ID, &plan.Type, &plan.Description, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error retrieving plan: %w", err)
	}

	tiers, err := r.listTiers(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Tiers = tiers

	return &plan, nil
}

// GetAll retrieves all plans with their tiers
func (r *PlanRepository) GetAll(ctx context.Context) ([]*models.Plan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, type, description, created_at, updated_at FROM plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(&plan.ID, &plan.Type, &plan.Description, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		tiers, err := r.listTiers(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		plan.Tiers = tiers
	}

	return plans, nil
}

// GetTierByID retrieves a single plan tier
func (r *PlanRepository) GetTierByID(ctx context.Context, id int64) (*models.PlanTier, error) {
	var tier models.PlanTier
	var pricing []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, plan_id, name, description, is_active, max_students, pricing
		FROM plan_tiers WHERE id = $1`, id).Scan(
		&tier.ID, &tier.PlanID, &tier.Name, &tier.Description, &tier.IsActive,
		&tier.MaxStudents, &pricing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanTierNotFound
		}
		return nil, fmt.Errorf("error retrieving plan tier: %w", err)
	}

	if len(pricing) > 0 {
		if err := json.Unmarshal(pricing, &tier.Pricing); err != nil {
			return nil, fmt.Errorf("error decoding pricing: %w", err)
		}
	}

	return &tier, nil
}

// MaxStudentsForTier returns the capacity limit of a plan tier; nil means no
// limit is configured.
func (r *PlanRepository) MaxStudentsForTier(ctx context.Context, tierID int64) (*int64, error) {
	var maxStudents *int64
	err := r.db.QueryRow(ctx,
		`SELECT max_students FROM plan_tiers WHERE id = $1`, tierID).Scan(&maxStudents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanTierNotFound
		}
		return nil, fmt.Errorf("error reading plan tier limit: %w", err)
	}

	return maxStudents, nil
}

// Update persists the mutable fields of a plan group
func (r *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE plans SET type = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		plan.Type, plan.Description, plan.ID)
	if err != nil {
		return fmt.Errorf("error updating plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// Delete removes a plan and its tiers
func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

func (r *PlanRepository) listTiers(ctx context.Context, planID int64) ([]models.PlanTier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, plan_id, name, description, is_active, max_students, pricing
		FROM plan_tiers WHERE plan_id = $1 ORDER BY id`, planID)
	if err != nil {
		return nil, fmt.Errorf("error listing plan tiers: %w", err)
	}
	defer rows.Close()

	var tiers []models.PlanTier
	for rows.Next() {
		var tier models.PlanTier
		var pricing []byte
		if err := rows.Scan(&tier.ID, &tier.PlanID, &tier.Name, &tier.Description,
			&tier.IsActive, &tier.MaxStudents, &pricing); err != nil {
			return nil, err
		}
		if len(pricing) > 0 {
			if err := json.Unmarshal(pricing, &tier.Pricing); err != nil {
				return nil, fmt.Errorf("error decoding pricing: %w", err)
			}
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tiers, nil
}
