// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"clientportal/internal/branding"
	"clientportal/internal/models"
)

// DocumentCache caches the branding document between reads.
// Satisfied by cache.BrandingCache; nil-safe via noopCache.
type DocumentCache interface {
	Get(ctx context.Context) (*models.BrandingSettings, bool)
	Set(ctx context.Context, doc *models.BrandingSettings)
	Invalidate(ctx context.Context)
}

// Branding serves the branding document API. Reads require a session;
// writes are admin-only (both enforced by the router).
type Branding struct {
	service    *branding.Service
	cache      DocumentCache
	activities ActivityRecorder
}

// NewBranding creates the branding handler group.
func NewBranding(service *branding.Service, cache DocumentCache, activities ActivityRecorder) *Branding {
	if cache == nil {
		cache = noopCache{}
	}
	return &Branding{service: service, cache: cache, activities: activities}
}

// Get returns the current branding document, from cache when possible.
func (b *Branding) Get(w http.ResponseWriter, r *http.Request) {
	if doc, ok := b.cache.Get(r.Context()); ok {
		writeJSON(w, http.StatusOK, doc)
		return
	}

	doc, err := b.service.Get(r.Context())
	if err != nil {
		slog.Error("branding read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load branding settings.")
		return
	}

	b.cache.Set(r.Context(), doc)
	writeJSON(w, http.StatusOK, doc)
}

// Patch applies a partial update to the branding document. Omitted
// fields keep their stored values. Returns the full resulting document.
func (b *Branding) Patch(w http.ResponseWriter, r *http.Request) {
	var patch models.BrandingPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := b.service.Update(r.Context(), &patch)
	if err != nil {
		var verr *branding.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "Validation failed.",
				Fields: verr.Fields,
			})
			return
		}
		slog.Error("branding update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save branding settings.")
		return
	}

	b.cache.Invalidate(r.Context())
	if err := b.activities.Record(r.Context(), "branding", "Branding settings updated"); err != nil {
		slog.Warn("activity record failed", "error", err)
	}

	writeJSON(w, http.StatusOK, doc)
}

// noopCache stands in when no cache backend is configured.
type noopCache struct{}

func (noopCache) Get(context.Context) (*models.BrandingSettings, bool) { return nil, false }
func (noopCache) Set(context.Context, *models.BrandingSettings)        {}
func (noopCache) Invalidate(context.Context)                           {}
