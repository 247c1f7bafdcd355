// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// branding.go provides a Valkey-backed cache for the serialized branding
// document. Every session fetches the document on page load, so serving
// it from Valkey skips the Postgres round trip on the hot path. Writes
// (PATCH and uploads) invalidate the cached copy.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"clientportal/internal/models"
)

const (
	// brandingKey is the single Valkey key for the cached document.
	brandingKey = "branding:doc"

	// DefaultBrandingTTL bounds staleness if an invalidation is ever missed.
	DefaultBrandingTTL = 5 * time.Minute
)

// BrandingCache caches the marshaled branding document in Valkey.
type BrandingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBrandingCache creates a branding cache backed by the given Valkey client.
func NewBrandingCache(client *redis.Client, ttl time.Duration) *BrandingCache {
	if ttl == 0 {
		ttl = DefaultBrandingTTL
	}
	return &BrandingCache{client: client, ttl: ttl}
}

// Get returns the cached document, or (nil, false) on miss. Cache errors
// degrade to a miss and the caller falls through to the database.
func (c *BrandingCache) Get(ctx context.Context) (*models.BrandingSettings, bool) {
	payload, err := c.client.Get(ctx, brandingKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("branding cache get error", "error", err)
		return nil, false
	}

	var doc models.BrandingSettings
	if err := json.Unmarshal(payload, &doc); err != nil {
		slog.Warn("branding cache decode error", "error", err)
		return nil, false
	}
	return &doc, true
}

// Set stores the document with the configured TTL. Best-effort.
func (c *BrandingCache) Set(ctx context.Context, doc *models.BrandingSettings) {
	payload, err := json.Marshal(doc)
	if err != nil {
		slog.Warn("branding cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, brandingKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("branding cache set error", "error", err)
	}
}

// Invalidate removes the cached document so the next read hits the store.
func (c *BrandingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, brandingKey).Err(); err != nil {
		slog.Warn("branding cache invalidate error", "error", err)
	}
	slog.Debug("branding cache invalidated")
}
