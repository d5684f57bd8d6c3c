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

// PaymentRepository handles database operations for payment records
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

// Create creates a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (
			owner_user_id, plan_tier_id, amount, currency, receipt,
			gateway_order_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.OwnerUserID, payment.PlanTierID, payment.Amount,
		payment.Currency, payment.Receipt, payment.GatewayOrderID,
		payment.Status).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}

	return nil
}

// MarkPaid records the gateway payment id and flips the status to paid.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id int64, gatewayPaymentID string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET gateway_payment_id = $1, status = 'paid', updated_at = NOW()
		WHERE id = $2`,
		gatewayPaymentID, id)
	if err != nil {
		return fmt.Errorf("error marking payment paid: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// GetByID retrieves a payment for an owner
func (r *PaymentRepository) GetByID(ctx context.Context, id int64, ownerUserID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_user_id, plan_tier_id, amount, currency, receipt,
			COALESCE(gateway_order_id, ''), COALESCE(gateway_payment_id, ''),
			status, created_at, updated_at
		FROM payments WHERE id = $1 AND owner_user_id = $2`,
		id, ownerUserID).Scan(
		&p.ID, &p.OwnerUserID, &p.PlanTierID, &p.Amount, &p.Currency,
		&p.Receipt, &p.GatewayOrderID, &p.GatewayPaymentID, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}

	return &p, nil
}

// ListByOwner retrieves the payment history of an owner
func (r *PaymentRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_user_id, plan_tier_id, amount, currency, receipt,
			COALESCE(gateway_order_id, ''), COALESCE(gateway_payment_id, ''),
			status, created_at, updated_at
		FROM payments WHERE owner_user_id = $1 ORDER BY created_at DESC`,
		ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.OwnerUserID, &p.PlanTierID, &p.Amount,
			&p.Currency, &p.Receipt, &p.GatewayOrderID, &p.GatewayPaymentID,
			&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
