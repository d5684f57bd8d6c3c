package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/dberrors"
)

// CouponRepository handles database operations for coupons
type CouponRepository struct {
	db *pgxpool.Pool
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{
		db: db,
	}
}

// Create creates a new coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO coupons (code, percent_off, valid_till, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		coupon.Code, coupon.PercentOff, coupon.ValidTill, coupon.IsActive).Scan(&coupon.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "coupons_code_key") {
			return apperrors.ErrCouponCodeExists
		}
		return fmt.Errorf("error creating coupon: %w", err)
	}

	return nil
}

// GetByCode retrieves a coupon by its code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.QueryRow(ctx, `
		SELECT id, code, percent_off, valid_till, is_active
		FROM coupons WHERE code = $1`, code).Scan(
		&c.ID, &c.Code, &c.PercentOff, &c.ValidTill, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCouponNotFound
		}
		return nil, fmt.Errorf("error retrieving coupon: %w", err)
	}

	return &c, nil
}

// GetAll retrieves all coupons
func (r *CouponRepository) GetAll(ctx context.Context) ([]*models.Coupon, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, percent_off, valid_till, is_active FROM coupons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*models.Coupon
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.PercentOff, &c.ValidTill, &c.IsActive); err != nil {
			return nil, err
		}
		coupons = append(coupons, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting coupon: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCouponNotFound
	}

	return nil
}
