// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clientportal/internal/imaging"
)

// Asset size bounds. Uploads are normalized to PNG at these widths.
const (
	maxUploadBytes  = 5 << 20 // 5 MB
	logoMaxWidth    = 512
	faviconMaxWidth = 64
)

// ObjectStorage is the subset of storage.Client the upload handler needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	ExtractKey(rawURL string) (string, bool)
}

// Upload handles POST /api/branding/upload/{type}. The multipart field
// "file" holds the image; {type} is "logo" or "favicon". The previous
// asset of the same type is deleted from storage after a successful swap.
func (b *Branding) Upload(storage ObjectStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if storage == nil {
			writeError(w, http.StatusServiceUnavailable, "File storage is not configured.")
			return
		}

		assetType := chi.URLParam(r, "type")
		var maxWidth int
		switch assetType {
		case "logo":
			maxWidth = logoMaxWidth
		case "favicon":
			maxWidth = faviconMaxWidth
		default:
			writeError(w, http.StatusBadRequest, "Upload type must be \"logo\" or \"favicon\".")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "A \"file\" upload field is required.")
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not read the uploaded file.")
			return
		}

		asset, err := imaging.Normalize(raw, maxWidth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "The uploaded file is not a supported image.")
			return
		}

		key := "branding/" + assetType + "-" + uuid.New().String() + ".png"
		if err := storage.Upload(r.Context(), key, asset.ContentType,
			bytes.NewReader(asset.Data), int64(len(asset.Data))); err != nil {
			slog.Error("asset upload failed", "type", assetType, "error", err)
			writeError(w, http.StatusInternalServerError, "Could not store the uploaded file.")
			return
		}

		// Remember the previous asset so it can be cleaned up.
		prev, err := b.service.Get(r.Context())
		if err != nil {
			slog.Warn("previous asset lookup failed", "error", err)
			prev = nil
		}

		url := storage.FileURL(key)
		if assetType == "logo" {
			_, err = b.service.SetLogoURL(r.Context(), url)
		} else {
			_, err = b.service.SetFaviconURL(r.Context(), url)
		}
		if err != nil {
			slog.Error("asset url save failed", "type", assetType, "error", err)
			writeError(w, http.StatusInternalServerError, "Could not save branding settings.")
			return
		}

		b.cache.Invalidate(r.Context())
		if err := b.activities.Record(r.Context(), "branding", "New "+assetType+" uploaded"); err != nil {
			slog.Warn("activity record failed", "error", err)
		}

		// Best-effort cleanup of the replaced asset.
		if prev != nil {
			prevURL := prev.LogoURL
			if assetType == "favicon" {
				prevURL = prev.FaviconURL
			}
			if oldKey, ok := storage.ExtractKey(prevURL); ok && oldKey != key {
				if err := storage.Delete(r.Context(), oldKey); err != nil {
					slog.Warn("old asset delete failed", "key", oldKey, "error", err)
				}
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}
