// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package branding

import (
	"context"
	"errors"
	"testing"
	"time"

	"clientportal/internal/models"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	doc     *models.BrandingSettings
	getErr  error
	applyN  int
}

func (f *fakeStore) Get(_ context.Context) (*models.BrandingSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeStore) Apply(_ context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error) {
	f.applyN++
	base := f.doc
	if base == nil {
		base = models.DefaultBranding()
	}
	merged := base.Merge(patch)
	if merged.CompanyName == "" {
		merged.CompanyName = models.DefaultCompanyName
	}
	merged.UpdatedAt = time.Now()
	f.doc = merged
	return merged, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// TestGet_EmptyStoreReturnsDefaults verifies that an empty store yields a
// renderable defaults document rather than an error.
func TestGet_EmptyStoreReturnsDefaults(t *testing.T) {
	svc := NewService(&fakeStore{})
	doc, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc == nil {
		t.Fatal("Get returned nil document")
	}
	if doc.LogoSize != models.LogoSizeDefault || doc.PrimaryColor != models.DefaultPrimaryColor {
		t.Errorf("unexpected defaults: %+v", doc)
	}
	if doc.MetaTitle != "" || doc.LogoURL != "" || doc.Services != nil {
		t.Errorf("optional fields should be empty: %+v", doc)
	}
}

func TestGet_StoreErrorPropagates(t *testing.T) {
	svc := NewService(&fakeStore{getErr: errors.New("connection refused")})
	if _, err := svc.Get(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// TestUpdate_RangeValidation covers the logo size boundary cases from the
// schema: 5 and 100 are rejected with a field error, 40 is stored verbatim.
func TestUpdate_RangeValidation(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	for _, bad := range []int{5, 100} {
		_, err := svc.Update(ctx, &models.BrandingPatch{LogoSize: intPtr(bad)})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Update(logoSize=%d): want ValidationError, got %v", bad, err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Field != "logoSize" {
			t.Errorf("want single logoSize field error, got %+v", verr.Fields)
		}
	}

	doc, err := svc.Update(ctx, &models.BrandingPatch{LogoSize: intPtr(40)})
	if err != nil {
		t.Fatalf("Update(logoSize=40): %v", err)
	}
	if doc.LogoSize != 40 {
		t.Errorf("LogoSize = %d, want 40", doc.LogoSize)
	}
}

// TestUpdate_ValidationFailurePerformsNoWrite verifies fail-fast: the
// store is never touched when validation rejects the patch.
func TestUpdate_ValidationFailurePerformsNoWrite(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs)

	_, err := svc.Update(context.Background(), &models.BrandingPatch{
		CompanyName:  strPtr("   "),
		PrimaryColor: strPtr("not-a-color"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("want 2 field errors, got %+v", verr.Fields)
	}
	if fs.applyN != 0 {
		t.Errorf("store written %d times despite validation failure", fs.applyN)
	}
}

// TestUpdate_MergePreservesUntouchedFields exercises the read-modify-write
// path through the service.
func TestUpdate_MergePreservesUntouchedFields(t *testing.T) {
	fs := &fakeStore{doc: &models.BrandingSettings{
		CompanyName:  "Acme",
		LogoSize:     48,
		PrimaryColor: "#123456",
		HeroTitle:    "Welcome",
	}}
	svc := NewService(fs)

	doc, err := svc.Update(context.Background(), &models.BrandingPatch{
		MetaTitle: strPtr("Acme Portal"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if doc.MetaTitle != "Acme Portal" {
		t.Errorf("MetaTitle = %q", doc.MetaTitle)
	}
	if doc.CompanyName != "Acme" || doc.LogoSize != 48 || doc.HeroTitle != "Welcome" {
		t.Errorf("untouched fields changed: %+v", doc)
	}
}

func TestUpdate_FirstWriteDefaultsCompanyName(t *testing.T) {
	svc := NewService(&fakeStore{})
	doc, err := svc.Update(context.Background(), &models.BrandingPatch{
		PrimaryColor: strPtr("#abcdef"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if doc.CompanyName != models.DefaultCompanyName {
		t.Errorf("CompanyName = %q, want placeholder %q", doc.CompanyName, models.DefaultCompanyName)
	}
}

func TestSetLogoAndFaviconURL(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	doc, err := svc.SetLogoURL(ctx, "https://cdn.example.com/logo.png")
	if err != nil {
		t.Fatalf("SetLogoURL: %v", err)
	}
	if doc.LogoURL != "https://cdn.example.com/logo.png" {
		t.Errorf("LogoURL = %q", doc.LogoURL)
	}

	doc, err = svc.SetFaviconURL(ctx, "https://cdn.example.com/favicon.ico")
	if err != nil {
		t.Fatalf("SetFaviconURL: %v", err)
	}
	if doc.FaviconURL != "https://cdn.example.com/favicon.ico" {
		t.Errorf("FaviconURL = %q", doc.FaviconURL)
	}
	if doc.LogoURL == "" {
		t.Error("favicon write cleared the logo URL")
	}
}
