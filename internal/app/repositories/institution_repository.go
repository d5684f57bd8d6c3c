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
	"github.com/vidyalayahq/vidyalaya/internal/pkg/dberrors"
)

const institutionColumns = `
	id, name, slug, subdomain, type, inst_code, owner_user_id, source_plan_id,
	tagline, logo_url, theme, contact, nav, pages, status, published_at,
	public_url, version, custom_domain, custom_domain_status,
	custom_domain_verification_token, created_at, updated_at`

// InstitutionRepository handles database operations for institutions
type InstitutionRepository struct {
	db *pgxpool.Pool
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
	}
}

func scanInstitution(row pgx.Row) (*models.Institution, error) {
	var inst models.Institution
	var theme, contact, nav, pages []byte
	var customDomainStatus, customDomainToken *string

	err := row.Scan(
		&inst.ID,
		&inst.Name,
		&inst.Slug,
		&inst.Subdomain,
		&inst.Type,
		&inst.InstCode,
		&inst.OwnerUserID,
		&inst.SourcePlanID,
		&inst.Tagline,
		&inst.LogoURL,
		&theme,
		&contact,
		&nav,
		&pages,
		&inst.Status,
		&inst.PublishedAt,
		&inst.PublicURL,
		&inst.Version,
		&inst.CustomDomain,
		&customDomainStatus,
		&customDomainToken,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customDomainStatus != nil {
		inst.CustomDomainStatus = *customDomainStatus
	}
	if customDomainToken != nil {
		inst.CustomDomainVerifyToken = *customDomainToken
	}

	for _, pair := range []struct {
		raw []byte
		out interface{}
	}{
		{theme, &inst.Theme},
		{contact, &inst.Contact},
		{nav, &inst.Nav},
		{pages, &inst.Pages},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.out); err != nil {
			return nil, fmt.Errorf("error decoding institution document fields: %w", err)
		}
	}

	return &inst, nil
}

// Create inserts a new draft institution and fills in its generated fields.
func (r *InstitutionRepository) Create(ctx context.Context, inst *models.Institution) error {
	theme, contact, nav, pages, err := marshalInstitutionDocs(inst)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO institutions (
			name, slug, subdomain, type, owner_user_id, source_plan_id, tagline,
			logo_url, theme, contact, nav, pages, status, public_url, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1)
		RETURNING id, version, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		inst.Name, inst.Slug, inst.Subdomain, inst.Type, inst.OwnerUserID,
		inst.SourcePlanID, inst.Tagline, inst.LogoURL, theme, contact, nav,
		pages, inst.Status, inst.PublicURL,
	).Scan(&inst.ID, &inst.Version, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "institutions_slug_key") ||
			dberrors.IsDuplicateConstraintError(err, "institutions_subdomain_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		return fmt.Errorf("error creating institution: %w", err)
	}

	return nil
}

// Update persists the mutable fields of an institution and bumps its version.
func (r *InstitutionRepository) Update(ctx context.Context, inst *models.Institution) error {
	theme, contact, nav, pages, err := marshalInstitutionDocs(inst)
	if err != nil {
		return err
	}

	query := `
		UPDATE institutions
		SET name = $1, type = $2, tagline = $3, logo_url = $4, theme = $5,
			contact = $6, nav = $7, pages = $8, source_plan_id = $9,
			status = $10, published_at = $11, public_url = $12,
			version = version + 1, updated_at = NOW()
		WHERE id = $13
		RETURNING version, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		inst.Name, inst.Type, inst.Tagline, inst.LogoURL, theme, contact, nav,
		pages, inst.SourcePlanID, inst.Status, inst.PublishedAt,
		inst.PublicURL, inst.ID,
	).Scan(&inst.Version, &inst.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInstitutionNotFound
		}
		return fmt.Errorf("error updating institution: %w", err)
	}

	return nil
}

// GetByID retrieves an institution by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := `SELECT ` + institutionColumns + ` FROM institutions WHERE id = $1`

	inst, err := scanInstitution(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}

	return inst, nil
}

// GetByIDForOwner retrieves an institution only if it belongs to the owner.
func (r *InstitutionRepository) GetByIDForOwner(ctx context.Context, id int64, ownerUserID string) (*models.Institution, error) {
	query := `SELECT ` + institutionColumns + ` FROM institutions WHERE id = $1 AND owner_user_id = $2`

	inst, err := scanInstitution(r.db.QueryRow(ctx, query, id, ownerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}

	return inst, nil
}

// GetBySubdomain retrieves a published institution by its subdomain.
func (r *InstitutionRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Institution, error) {
	query := `SELECT ` + institutionColumns + ` FROM institutions WHERE subdomain = $1 AND status = 'published'`

	inst, err := scanInstitution(r.db.QueryRow(ctx, query, subdomain))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution by subdomain: %w", err)
	}

	return inst, nil
}

// ListByOwner retrieves all institutions held by an owner, optionally
// filtered by plan tier.
func (r *InstitutionRepository) ListByOwner(ctx context.Context, ownerUserID string, planTierID *int64) ([]*models.Institution, error) {
	query := `SELECT ` + institutionColumns + ` FROM institutions WHERE owner_user_id = $1`
	args := []interface{}{ownerUserID}
	if planTierID != nil {
		query += ` AND source_plan_id = $2`
		args = append(args, *planTierID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing institutions: %w", err)
	}
	defer rows.Close()

	var insts []*models.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return insts, nil
}

// ListIDsByOwnerAndPlan returns the ids and names of institutions an owner
// holds under a plan tier, for cross-institution roster queries.
func (r *InstitutionRepository) ListIDsByOwnerAndPlan(ctx context.Context, ownerUserID string, planTierID int64) (map[int64]*models.Institution, error) {
	query := `
		SELECT id, name, type
		FROM institutions
		WHERE owner_user_id = $1 AND source_plan_id = $2
	`

	rows, err := r.db.Query(ctx, query, ownerUserID, planTierID)
	if err != nil {
		return nil, fmt.Errorf("error listing institutions for plan: %w", err)
	}
	defer rows.Close()

	insts := make(map[int64]*models.Institution)
	for rows.Next() {
		var inst models.Institution
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.Type); err != nil {
			return nil, err
		}
		insts[inst.ID] = &inst
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return insts, nil
}

// SlugExists checks whether a slug is already taken.
func (r *InstitutionRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM institutions WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking slug existence: %w", err)
	}

	return exists, nil
}

// AssignCodeIfAbsent sets the institution code only if none is assigned yet,
// then returns the durably retained code. Two concurrent first-time callers
// may both draw a candidate from the global counter, but the conditional
// update guarantees exactly one of them sticks; the loser's draw is wasted,
// which is harmless.
func (r *InstitutionRepository) AssignCodeIfAbsent(ctx context.Context, id int64, code int) (int, error) {
	_, err := r.db.Exec(ctx,
		`UPDATE institutions SET inst_code = $1 WHERE id = $2 AND inst_code IS NULL`, code, id)
	if err != nil {
		return 0, fmt.Errorf("error assigning institution code: %w", err)
	}

	var assigned *int
	err = r.db.QueryRow(ctx, `SELECT inst_code FROM institutions WHERE id = $1`, id).Scan(&assigned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInstitutionNotFound
		}
		return 0, fmt.Errorf("error reading institution code: %w", err)
	}

	if assigned == nil {
		return 0, fmt.Errorf("institution code missing after assignment for institution %d", id)
	}

	return *assigned, nil
}

// DeleteDraftsExcept removes stale draft institutions an owner holds under a
// plan tier, keeping only the given one. Enforces the single-site-per-plan
// rule after publish or re-create.
func (r *InstitutionRepository) DeleteDraftsExcept(ctx context.Context, ownerUserID string, planTierID, keepID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM institutions
		WHERE owner_user_id = $1 AND source_plan_id = $2 AND status = 'draft' AND id != $3`,
		ownerUserID, planTierID, keepID)
	if err != nil {
		return fmt.Errorf("error deleting stale drafts: %w", err)
	}

	return nil
}

// SetCustomDomainRequest records a pending custom domain with its
// verification token.
func (r *InstitutionRepository) SetCustomDomainRequest(ctx context.Context, id int64, domain, token string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE institutions
		SET custom_domain = $1, custom_domain_status = 'pending',
			custom_domain_verification_token = $2, updated_at = NOW()
		WHERE id = $3`,
		domain, token, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "institutions_custom_domain_key") {
			return apperrors.ErrCustomDomainInUse
		}
		return fmt.Errorf("error requesting custom domain: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

// SetCustomDomainStatus updates the verification state of a custom domain.
func (r *InstitutionRepository) SetCustomDomainStatus(ctx context.Context, id int64, status string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE institutions SET custom_domain_status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating custom domain status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

func marshalInstitutionDocs(inst *models.Institution) (theme, contact, nav, pages []byte, err error) {
	if theme, err = json.Marshal(inst.Theme); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error encoding theme: %w", err)
	}
	if contact, err = json.Marshal(inst.Contact); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error encoding contact: %w", err)
	}
	if nav, err = json.Marshal(inst.Nav); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error encoding nav: %w", err)
	}
	if pages, err = json.Marshal(inst.Pages); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error encoding pages: %w", err)
	}
	return theme, contact, nav, pages, nil
}
