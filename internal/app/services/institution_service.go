package services

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	"github.com/vidyalayahq/vidyalaya/internal/config"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// customDomainTXTPrefix is the DNS record name owners must create to prove
// control of a custom domain.
const customDomainTXTPrefix = "_vidyalaya-verify."

// DraftSiteInput carries the editable fields of an institution site. A zero
// ID means create; otherwise the identified draft is updated in place.
type DraftSiteInput struct {
	ID           int64
	Name         string
	Type         models.InstitutionType
	SourcePlanID *int64
	Tagline      string
	LogoURL      string
	Theme        *models.Theme
	Contact      *models.Contact
	Nav          []models.NavItem
	Pages        []models.Page
}

// InstitutionService manages the draft/publish lifecycle of tenant sites.
type InstitutionService struct {
	institutions *repositories.InstitutionRepository
	cfg          *config.Config
	logger       zerolog.Logger
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(institutions *repositories.InstitutionRepository, cfg *config.Config, logger zerolog.Logger) *InstitutionService {
	return &InstitutionService{
		institutions: institutions,
		cfg:          cfg,
		logger:       logger,
	}
}

// SaveDraft creates a draft site or updates an existing one owned by the
// caller. New drafts get a unique slug derived from the name, the default
// navigation and page scaffold, and start unpublished.
func (s *InstitutionService) SaveDraft(ctx context.Context, ownerUserID string, in DraftSiteInput) (*models.Institution, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidationFailed)
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown institution type %q", apperrors.ErrValidationFailed, in.Type)
	}

	if in.ID != 0 {
		return s.updateDraft(ctx, ownerUserID, in)
	}

	slug, err := s.uniqueSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}

	inst := &models.Institution{
		Name:         in.Name,
		Slug:         slug,
		Subdomain:    slug,
		Type:         in.Type,
		OwnerUserID:  ownerUserID,
		SourcePlanID: in.SourcePlanID,
		Tagline:      in.Tagline,
		LogoURL:      in.LogoURL,
		Theme:        models.Theme{PaletteKey: "classic"},
		Contact:      models.Contact{},
		Nav:          models.DefaultNav(),
		Pages:        models.DefaultPages(),
		Status:       models.InstitutionStatusDraft,
		PublicURL:    s.publicURL(slug),
	}
	applyDraftDocs(inst, in)

	if err := s.institutions.Create(ctx, inst); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("institutionId", inst.ID).
		Str("slug", inst.Slug).
		Msg("Draft site created")

	return inst, nil
}

func (s *InstitutionService) updateDraft(ctx context.Context, ownerUserID string, in DraftSiteInput) (*models.Institution, error) {
	inst, err := s.institutions.GetByIDForOwner(ctx, in.ID, ownerUserID)
	if err != nil {
		return nil, err
	}

	inst.Name = in.Name
	inst.Type = in.Type
	inst.Tagline = in.Tagline
	inst.LogoURL = in.LogoURL
	if in.SourcePlanID != nil {
		inst.SourcePlanID = in.SourcePlanID
	}
	applyDraftDocs(inst, in)

	if err := s.institutions.Update(ctx, inst); err != nil {
		return nil, err
	}

	return inst, nil
}

func applyDraftDocs(inst *models.Institution, in DraftSiteInput) {
	if in.Theme != nil {
		inst.Theme = *in.Theme
	}
	if in.Contact != nil {
		inst.Contact = *in.Contact
	}
	if in.Nav != nil {
		inst.Nav = in.Nav
	}
	if in.Pages != nil {
		inst.Pages = in.Pages
	}
}

// Publish flips a draft to published, stamps the publish time and prunes any
// stale drafts the owner still holds under the same plan tier. Publishing an
// already published site just republishes the current content.
func (s *InstitutionService) Publish(ctx context.Context, ownerUserID string, id int64) (*models.Institution, error) {
	inst, err := s.institutions.GetByIDForOwner(ctx, id, ownerUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inst.Status = models.InstitutionStatusPublished
	inst.PublishedAt = &now
	inst.PublicURL = s.publicURL(inst.Subdomain)

	if err := s.institutions.Update(ctx, inst); err != nil {
		return nil, err
	}

	if inst.SourcePlanID != nil {
		if err := s.institutions.DeleteDraftsExcept(ctx, ownerUserID, *inst.SourcePlanID, inst.ID); err != nil {
			s.logger.Warn().Err(err).Int64("institutionId", inst.ID).Msg("Failed to prune stale drafts")
		}
	}

	s.logger.Info().
		Int64("institutionId", inst.ID).
		Str("publicUrl", inst.PublicURL).
		Msg("Site published")

	return inst, nil
}

// Mine lists the caller's institutions, optionally restricted to a plan tier.
func (s *InstitutionService) Mine(ctx context.Context, ownerUserID string, planTierID *int64) ([]*models.Institution, error) {
	return s.institutions.ListByOwner(ctx, ownerUserID, planTierID)
}

// Get returns one of the caller's institutions by id.
func (s *InstitutionService) Get(ctx context.Context, ownerUserID string, id int64) (*models.Institution, error) {
	return s.institutions.GetByIDForOwner(ctx, id, ownerUserID)
}

// GetPublicSite resolves a published site by its subdomain for anonymous
// rendering.
func (s *InstitutionService) GetPublicSite(ctx context.Context, subdomain string) (*models.Institution, error) {
	return s.institutions.GetBySubdomain(ctx, subdomain)
}

// RequestCustomDomain records a custom domain wish and returns the TXT
// record value the owner must publish under _vidyalaya-verify.<domain>.
func (s *InstitutionService) RequestCustomDomain(ctx context.Context, ownerUserID string, id int64, domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" || strings.ContainsAny(domain, "/ ") || !strings.Contains(domain, ".") {
		return "", fmt.Errorf("%w: invalid domain", apperrors.ErrValidationFailed)
	}

	inst, err := s.institutions.GetByIDForOwner(ctx, id, ownerUserID)
	if err != nil {
		return "", err
	}

	token := uuid.New().String()
	if err := s.institutions.SetCustomDomainRequest(ctx, inst.ID, domain, token); err != nil {
		return "", err
	}

	return token, nil
}

// VerifyCustomDomain looks up the verification TXT record and activates the
// domain when the expected token is found.
func (s *InstitutionService) VerifyCustomDomain(ctx context.Context, ownerUserID string, id int64) (bool, error) {
	inst, err := s.institutions.GetByIDForOwner(ctx, id, ownerUserID)
	if err != nil {
		return false, err
	}
	if inst.CustomDomain == nil || inst.CustomDomainVerifyToken == "" {
		return false, fmt.Errorf("%w: no custom domain requested", apperrors.ErrValidationFailed)
	}

	records, err := net.DefaultResolver.LookupTXT(ctx, customDomainTXTPrefix+*inst.CustomDomain)
	if err != nil {
		if setErr := s.institutions.SetCustomDomainStatus(ctx, inst.ID, "error"); setErr != nil {
			return false, setErr
		}
		return false, nil
	}

	for _, record := range records {
		if strings.TrimSpace(record) == inst.CustomDomainVerifyToken {
			if err := s.institutions.SetCustomDomainStatus(ctx, inst.ID, "active"); err != nil {
				return false, err
			}
			s.logger.Info().
				Int64("institutionId", inst.ID).
				Str("domain", *inst.CustomDomain).
				Msg("Custom domain verified")
			return true, nil
		}
	}

	if err := s.institutions.SetCustomDomainStatus(ctx, inst.ID, "pending"); err != nil {
		return false, err
	}

	return false, nil
}

// uniqueSlug derives a URL-safe slug from the name and suffixes a counter
// until it is free.
func (s *InstitutionService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "site"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.institutions.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		if i > 50 {
			// Extremely popular name; fall back to a random suffix.
			return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Slugify lowercases the name and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// publicURL builds the site URL by prefixing the subdomain onto the
// configured frontend host.
func (s *InstitutionService) publicURL(subdomain string) string {
	u, err := url.Parse(s.cfg.Server.FrontendURL)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("https://%s.vidyalaya.app", subdomain)
	}
	host := strings.TrimPrefix(u.Host, "www.")
	return fmt.Sprintf("%s://%s.%s", u.Scheme, subdomain, host)
}
