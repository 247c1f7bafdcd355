// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"
	"errors"
	"fmt"

	"clientportal/internal/branding"
	"clientportal/internal/models"
)

// Submitter sends a branding patch to the backend. A rejected patch
// surfaces as a wrapped *branding.ValidationError.
type Submitter interface {
	SubmitBranding(ctx context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error)
}

// Form is an editable snapshot of the branding document. Edits accumulate
// in Values and are submitted as one full-shape patch; a failed submit
// keeps the unsaved edits so nothing the user typed is lost.
type Form struct {
	client    *Client
	submitter Submitter

	loaded      bool
	submitting  bool
	Values      models.BrandingSettings
	FieldErrors []branding.FieldError
	Err         error
}

// NewForm creates a branding settings form bound to the given client
// cache and submitter.
func NewForm(client *Client, submitter Submitter) *Form {
	return &Form{client: client, submitter: submitter}
}

// Load populates the form from the current branding document. While the
// document is loading or failed to load the form stays disabled.
func (f *Form) Load(ctx context.Context) error {
	state := f.client.Current(ctx)
	if state.Document == nil {
		f.loaded = false
		f.Err = state.Err
		if f.Err == nil {
			f.Err = errors.New("branding document unavailable")
		}
		return f.Err
	}

	snapshot := *state.Document
	snapshot.Services = append([]models.ServiceItem(nil), state.Document.Services...)
	snapshot.LoginFeatures = append([]string(nil), state.Document.LoginFeatures...)
	if state.Document.LoginGradient != nil {
		g := *state.Document.LoginGradient
		snapshot.LoginGradient = &g
	}

	f.Values = snapshot
	f.loaded = true
	f.Err = nil
	f.FieldErrors = nil
	return nil
}

// Disabled reports whether the form should reject edits and submits.
func (f *Form) Disabled() bool {
	return !f.loaded || f.submitting
}

// AddService appends a service entry.
func (f *Form) AddService(item models.ServiceItem) {
	f.Values.Services = append(append([]models.ServiceItem(nil), f.Values.Services...), item)
}

// UpdateService replaces the service at index i.
func (f *Form) UpdateService(i int, item models.ServiceItem) error {
	if i < 0 || i >= len(f.Values.Services) {
		return fmt.Errorf("service index %d out of range", i)
	}
	next := append([]models.ServiceItem(nil), f.Values.Services...)
	next[i] = item
	f.Values.Services = next
	return nil
}

// RemoveService deletes the service at index i.
func (f *Form) RemoveService(i int) error {
	if i < 0 || i >= len(f.Values.Services) {
		return fmt.Errorf("service index %d out of range", i)
	}
	next := append([]models.ServiceItem(nil), f.Values.Services[:i]...)
	f.Values.Services = append(next, f.Values.Services[i+1:]...)
	return nil
}

// AddLoginFeature appends a login feature line.
func (f *Form) AddLoginFeature(text string) {
	f.Values.LoginFeatures = append(append([]string(nil), f.Values.LoginFeatures...), text)
}

// UpdateLoginFeature replaces the feature at index i.
func (f *Form) UpdateLoginFeature(i int, text string) error {
	if i < 0 || i >= len(f.Values.LoginFeatures) {
		return fmt.Errorf("login feature index %d out of range", i)
	}
	next := append([]string(nil), f.Values.LoginFeatures...)
	next[i] = text
	f.Values.LoginFeatures = next
	return nil
}

// RemoveLoginFeature deletes the feature at index i.
func (f *Form) RemoveLoginFeature(i int) error {
	if i < 0 || i >= len(f.Values.LoginFeatures) {
		return fmt.Errorf("login feature index %d out of range", i)
	}
	next := append([]string(nil), f.Values.LoginFeatures[:i]...)
	f.Values.LoginFeatures = append(next, f.Values.LoginFeatures[i+1:]...)
	return nil
}

// Submit sends the whole form as one patch. On success the form snapshot
// is replaced with the server's document and the client cache is
// invalidated; on failure the edits stay in place and any server field
// errors are exposed via FieldErrors.
func (f *Form) Submit(ctx context.Context) error {
	if f.Disabled() {
		return errors.New("form is not ready to submit")
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	doc, err := f.submitter.SubmitBranding(ctx, f.patch())
	if err != nil {
		var verr *branding.ValidationError
		if errors.As(err, &verr) {
			f.FieldErrors = verr.Fields
		}
		f.Err = err
		return err
	}

	f.Values = *doc
	f.FieldErrors = nil
	f.Err = nil
	f.client.Invalidate()
	return nil
}

// patch converts the full form snapshot into a patch with every field
// present, mirroring how the original settings form saved.
func (f *Form) patch() *models.BrandingPatch {
	v := f.Values
	services := append([]models.ServiceItem(nil), v.Services...)
	features := append([]string(nil), v.LoginFeatures...)

	p := &models.BrandingPatch{
		CompanyName:      &v.CompanyName,
		LogoURL:          &v.LogoURL,
		FaviconURL:       &v.FaviconURL,
		LogoSize:         &v.LogoSize,
		PrimaryColor:     &v.PrimaryColor,
		MetaTitle:        &v.MetaTitle,
		MetaDescription:  &v.MetaDescription,
		HeroTitle:        &v.HeroTitle,
		HeroDescription:  &v.HeroDescription,
		Services:         &services,
		CTATitle:         &v.CTATitle,
		CTADescription:   &v.CTADescription,
		CTAButtonText:    &v.CTAButtonText,
		LoginTitle:       &v.LoginTitle,
		LoginDescription: &v.LoginDescription,
		LoginFeatures:    &features,
	}
	if v.LoginGradient != nil {
		g := *v.LoginGradient
		p.LoginGradient = &g
	}
	return p
}
