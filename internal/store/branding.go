// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"clientportal/internal/models"
)

// brandingRowID is the fixed primary key of the singleton branding row.
// The schema carries a CHECK (id = 1) so a second row can never exist,
// even under concurrent first writes.
const brandingRowID = 1

// BrandingStore persists the singleton branding document.
type BrandingStore struct {
	db *sql.DB
}

// NewBrandingStore returns a BrandingStore backed by the given database.
func NewBrandingStore(db *sql.DB) *BrandingStore {
	return &BrandingStore{db: db}
}

// Get returns the stored branding document, or (nil, nil) if none has
// been persisted yet. Absence is not an error.
func (s *BrandingStore) Get(ctx context.Context) (*models.BrandingSettings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT company_name, logo_url, favicon_url, logo_size, primary_color,
		       meta_title, meta_description, hero_title, hero_description,
		       services, cta_title, cta_description, cta_button_text,
		       login_title, login_description, login_features, login_gradient,
		       updated_at
		FROM branding_settings WHERE id = $1
	`, brandingRowID)

	doc, err := scanBranding(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get branding: %w", err)
	}
	return doc, nil
}

// Apply merges the patch into the stored document and persists the result
// in one transaction. If no document exists yet, one is created from the
// hardcoded defaults merged with the patch (companyName falls back to a
// fixed placeholder). The logo size is re-clamped and updated_at stamped
// on every write. Returns the full resulting document.
func (s *BrandingStore) Apply(ctx context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("apply branding: begin: %w", err)
	}
	defer tx.Rollback()

	// Lock the singleton row so concurrent writers serialize here.
	row := tx.QueryRowContext(ctx, `
		SELECT company_name, logo_url, favicon_url, logo_size, primary_color,
		       meta_title, meta_description, hero_title, hero_description,
		       services, cta_title, cta_description, cta_button_text,
		       login_title, login_description, login_features, login_gradient,
		       updated_at
		FROM branding_settings WHERE id = $1 FOR UPDATE
	`, brandingRowID)

	current, err := scanBranding(row)
	if err == sql.ErrNoRows {
		current = models.DefaultBranding()
	} else if err != nil {
		return nil, fmt.Errorf("apply branding: read: %w", err)
	}

	merged := current.Merge(patch)
	if merged.CompanyName == "" {
		merged.CompanyName = models.DefaultCompanyName
	}
	merged.LogoSize = models.ClampLogoSize(merged.LogoSize)
	merged.UpdatedAt = time.Now().UTC()

	services, features, gradient, err := marshalBrandingJSON(merged)
	if err != nil {
		return nil, fmt.Errorf("apply branding: encode: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO branding_settings (
			id, company_name, logo_url, favicon_url, logo_size, primary_color,
			meta_title, meta_description, hero_title, hero_description,
			services, cta_title, cta_description, cta_button_text,
			login_title, login_description, login_features, login_gradient,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			logo_url = EXCLUDED.logo_url,
			favicon_url = EXCLUDED.favicon_url,
			logo_size = EXCLUDED.logo_size,
			primary_color = EXCLUDED.primary_color,
			meta_title = EXCLUDED.meta_title,
			meta_description = EXCLUDED.meta_description,
			hero_title = EXCLUDED.hero_title,
			hero_description = EXCLUDED.hero_description,
			services = EXCLUDED.services,
			cta_title = EXCLUDED.cta_title,
			cta_description = EXCLUDED.cta_description,
			cta_button_text = EXCLUDED.cta_button_text,
			login_title = EXCLUDED.login_title,
			login_description = EXCLUDED.login_description,
			login_features = EXCLUDED.login_features,
			login_gradient = EXCLUDED.login_gradient,
			updated_at = EXCLUDED.updated_at
	`,
		brandingRowID, merged.CompanyName,
		nullStr(merged.LogoURL), nullStr(merged.FaviconURL),
		merged.LogoSize, merged.PrimaryColor,
		nullStr(merged.MetaTitle), nullStr(merged.MetaDescription),
		nullStr(merged.HeroTitle), nullStr(merged.HeroDescription),
		services,
		nullStr(merged.CTATitle), nullStr(merged.CTADescription), nullStr(merged.CTAButtonText),
		nullStr(merged.LoginTitle), nullStr(merged.LoginDescription),
		features, gradient,
		merged.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("apply branding: write: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("apply branding: commit: %w", err)
	}
	return merged, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBranding decodes one branding row, including its JSONB columns.
func scanBranding(row rowScanner) (*models.BrandingSettings, error) {
	var (
		doc                          models.BrandingSettings
		logoURL, faviconURL          sql.NullString
		metaTitle, metaDesc          sql.NullString
		heroTitle, heroDesc          sql.NullString
		ctaTitle, ctaDesc, ctaButton sql.NullString
		loginTitle, loginDesc        sql.NullString
		services, features, gradient []byte
	)

	err := row.Scan(
		&doc.CompanyName, &logoURL, &faviconURL, &doc.LogoSize, &doc.PrimaryColor,
		&metaTitle, &metaDesc, &heroTitle, &heroDesc,
		&services, &ctaTitle, &ctaDesc, &ctaButton,
		&loginTitle, &loginDesc, &features, &gradient,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.LogoURL = logoURL.String
	doc.FaviconURL = faviconURL.String
	doc.MetaTitle = metaTitle.String
	doc.MetaDescription = metaDesc.String
	doc.HeroTitle = heroTitle.String
	doc.HeroDescription = heroDesc.String
	doc.CTATitle = ctaTitle.String
	doc.CTADescription = ctaDesc.String
	doc.CTAButtonText = ctaButton.String
	doc.LoginTitle = loginTitle.String
	doc.LoginDescription = loginDesc.String

	if len(services) > 0 {
		if err := json.Unmarshal(services, &doc.Services); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &doc.LoginFeatures); err != nil {
			return nil, fmt.Errorf("decode login features: %w", err)
		}
	}
	if len(gradient) > 0 {
		if err := json.Unmarshal(gradient, &doc.LoginGradient); err != nil {
			return nil, fmt.Errorf("decode login gradient: %w", err)
		}
	}

	return &doc, nil
}

// marshalBrandingJSON encodes the document's collection fields for the
// JSONB columns. Empty collections are stored as NULL.
func marshalBrandingJSON(doc *models.BrandingSettings) (services, features, gradient []byte, err error) {
	if len(doc.Services) > 0 {
		if services, err = json.Marshal(doc.Services); err != nil {
			return nil, nil, nil, err
		}
	}
	if len(doc.LoginFeatures) > 0 {
		if features, err = json.Marshal(doc.LoginFeatures); err != nil {
			return nil, nil, nil, err
		}
	}
	if doc.LoginGradient != nil {
		if gradient, err = json.Marshal(doc.LoginGradient); err != nil {
			return nil, nil, nil, err
		}
	}
	return services, features, gradient, nil
}

// nullStr maps empty strings to SQL NULL.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
