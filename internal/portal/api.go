// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clientportal/internal/branding"
	"clientportal/internal/models"
)

// APIClient talks to the portal's REST API. It implements Fetcher and
// Submitter for the client cache and the settings form.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	// Header is attached to every request, typically carrying the
	// session cookie and CSRF token.
	Header http.Header
}

// NewAPIClient creates an API client for the given base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Header:     make(http.Header),
	}
}

// FetchBranding loads the branding document via GET /api/branding.
func (a *APIClient) FetchBranding(ctx context.Context) (*models.BrandingSettings, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/branding", nil)
	if err != nil {
		return nil, err
	}
	var doc models.BrandingSettings
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("branding decode: %w", err)
	}
	return &doc, nil
}

// SubmitBranding applies a patch via PATCH /api/branding. Server-side
// validation failures come back as a *branding.ValidationError.
func (a *APIClient) SubmitBranding(ctx context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("branding patch encode: %w", err)
	}
	body, err := a.do(ctx, http.MethodPatch, "/api/branding", payload)
	if err != nil {
		return nil, err
	}
	var doc models.BrandingSettings
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("branding decode: %w", err)
	}
	return &doc, nil
}

// do performs one API request and returns the response body, translating
// 400 validation envelopes into *branding.ValidationError.
func (a *APIClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("portal api request: %w", err)
	}
	for name, values := range a.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal api http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("portal api read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusBadRequest:
		var envelope struct {
			Error  string                `json:"error"`
			Fields []branding.FieldError `json:"errors"`
		}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && len(envelope.Fields) > 0 {
			return nil, fmt.Errorf("portal api: %w", &branding.ValidationError{Fields: envelope.Fields})
		}
		return nil, fmt.Errorf("portal api error (status 400): %s", string(body))
	default:
		return nil, fmt.Errorf("portal api error (status %d): %s", resp.StatusCode, string(body))
	}
}
