// Package seed fills an empty database with the default plan catalog so a
// fresh deployment has something to sell.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/vidyalayahq/vidyalaya/internal/app/models"
)

// CreateDefaultData seeds the plan catalog and feature list when they are
// empty. It is safe to run on every startup.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedFeatures(ctx, db, lgr); err != nil {
		return err
	}
	return seedPlans(ctx, db, lgr)
}

func seedFeatures(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM features`).Scan(&count); err != nil {
		return fmt.Errorf("error counting features: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Feature{
		{Key: "website-builder", Title: "Website Builder", Description: "Drag and drop microsite builder with themes", Category: "website"},
		{Key: "custom-subdomain", Title: "Custom Subdomain", Description: "Your institution at yourname.vidyalaya.app", Category: "website"},
		{Key: "custom-domain", Title: "Custom Domain", Description: "Connect your own domain with DNS verification", Category: "website"},
		{Key: "student-management", Title: "Student Management", Description: "Enroll students with automatic roll numbers", Category: "students"},
		{Key: "bulk-import", Title: "Bulk Import", Description: "Import students from CSV or Excel sheets", Category: "students"},
		{Key: "student-portal", Title: "Student Portal", Description: "Students log in with their roll number", Category: "students"},
	}

	for _, f := range defaults {
		_, err := db.Exec(ctx, `
			INSERT INTO features (key, title, description, category)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (key) DO NOTHING`,
			f.Key, f.Title, f.Description, f.Category)
		if err != nil {
			return fmt.Errorf("error seeding feature %s: %w", f.Key, err)
		}
	}

	lgr.Info().Int("count", len(defaults)).Msg("Seeded default features")
	return nil
}

func seedPlans(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM plans`).Scan(&count); err != nil {
		return fmt.Errorf("error counting plans: %w", err)
	}
	if count > 0 {
		return nil
	}

	starterLimit := int64(100)
	growthLimit := int64(500)

	plans := []models.Plan{
		{
			Type:        "Coaching",
			Description: "Plans for coaching centers",
			Tiers: []models.PlanTier{
				{Name: "Starter", Description: "Small coaching centers", IsActive: true, MaxStudents: &starterLimit, Pricing: []models.PricingTier{
					{DurationMonths: 1, BasePrice: 499, Currency: "INR"},
					{DurationMonths: 12, BasePrice: 5988, DiscountPrice: 4999, Currency: "INR"},
				}},
				{Name: "Growth", Description: "Growing coaching centers", IsActive: true, MaxStudents: &growthLimit, Pricing: []models.PricingTier{
					{DurationMonths: 1, BasePrice: 999, Currency: "INR"},
					{DurationMonths: 12, BasePrice: 11988, DiscountPrice: 9999, Currency: "INR"},
				}},
				{Name: "Pro", Description: "Unlimited students", IsActive: true, Pricing: []models.PricingTier{
					{DurationMonths: 1, BasePrice: 1999, Currency: "INR"},
					{DurationMonths: 12, BasePrice: 23988, DiscountPrice: 19999, Currency: "INR"},
				}},
			},
		},
		{
			Type:        "School",
			Description: "Plans for schools",
			Tiers: []models.PlanTier{
				{Name: "Standard", Description: "For schools of any size", IsActive: true, Pricing: []models.PricingTier{
					{DurationMonths: 12, BasePrice: 14999, Currency: "INR"},
				}},
			},
		},
		{
			Type:        "College",
			Description: "Plans for colleges",
			Tiers: []models.PlanTier{
				{Name: "Standard", Description: "For colleges of any size", IsActive: true, Pricing: []models.PricingTier{
					{DurationMonths: 12, BasePrice: 24999, Currency: "INR"},
				}},
			},
		},
	}

	for _, p := range plans {
		var planID int64
		err := db.QueryRow(ctx, `
			INSERT INTO plans (type, description)
			VALUES ($1, $2)
			RETURNING id`,
			p.Type, p.Description).Scan(&planID)
		if err != nil {
			return fmt.Errorf("error seeding plan %s: %w", p.Type, err)
		}

		for _, tier := range p.Tiers {
			pricing, err := json.Marshal(tier.Pricing)
			if err != nil {
				return fmt.Errorf("error encoding pricing for tier %s: %w", tier.Name, err)
			}
			_, err = db.Exec(ctx, `
				INSERT INTO plan_tiers (plan_id, name, description, is_active, max_students, pricing)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				planID, tier.Name, tier.Description, tier.IsActive, tier.MaxStudents, pricing)
			if err != nil {
				return fmt.Errorf("error seeding tier %s: %w", tier.Name, err)
			}
		}
	}

	lgr.Info().Int("count", len(plans)).Msg("Seeded default plans")
	return nil
}
