// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package branding implements the branding-settings service: validation
// of partial updates and merge-and-persist against the singleton document.
package branding

import (
	"context"
	"fmt"

	"clientportal/internal/models"
)

// Store is the persistence contract the service depends on.
// *store.BrandingStore satisfies it; tests supply an in-memory fake.
type Store interface {
	Get(ctx context.Context) (*models.BrandingSettings, error)
	Apply(ctx context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error)
}

// Service validates and applies branding updates.
type Service struct {
	store Store
}

// NewService creates a branding service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the current branding document. When nothing has been
// persisted yet it returns the empty-defaults document, never an error,
// so callers always get something renderable.
func (s *Service) Get(ctx context.Context) (*models.BrandingSettings, error) {
	doc, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("branding get: %w", err)
	}
	if doc == nil {
		return models.DefaultBranding(), nil
	}
	return doc, nil
}

// Update validates the patch and, if it passes, merges it into the stored
// document. On validation failure it returns a *ValidationError carrying
// field-level messages and performs no write.
func (s *Service) Update(ctx context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error) {
	if verr := ValidatePatch(patch); verr != nil {
		return nil, verr
	}
	doc, err := s.store.Apply(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("branding update: %w", err)
	}
	return doc, nil
}

// SetLogoURL stores just the logo URL, used by the upload endpoint after
// a successful file upload.
func (s *Service) SetLogoURL(ctx context.Context, url string) (*models.BrandingSettings, error) {
	return s.Update(ctx, &models.BrandingPatch{LogoURL: &url})
}

// SetFaviconURL stores just the favicon URL.
func (s *Service) SetFaviconURL(ctx context.Context, url string) (*models.BrandingSettings, error) {
	return s.Update(ctx, &models.BrandingPatch{FaviconURL: &url})
}
