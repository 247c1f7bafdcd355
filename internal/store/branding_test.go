package store

import (
	"context"
	"testing"

	"clientportal/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestBrandingStore_GetAbsent(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	s := NewBrandingStore(db)

	doc, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc != nil {
		t.Errorf("doc = %+v, want nil when nothing persisted", doc)
	}
}

func TestBrandingStore_FirstWriteDefaults(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	t.Cleanup(func() { cleanBranding(t, db) })
	s := NewBrandingStore(db)

	// First write without a company name gets the placeholder.
	doc, err := s.Apply(context.Background(), &models.BrandingPatch{
		PrimaryColor: strPtr("#336699"),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if doc.CompanyName != models.DefaultCompanyName {
		t.Errorf("companyName = %q, want placeholder", doc.CompanyName)
	}
	if doc.LogoSize != models.LogoSizeDefault {
		t.Errorf("logoSize = %d, want default", doc.LogoSize)
	}
	if doc.PrimaryColor != "#336699" {
		t.Errorf("primaryColor = %q", doc.PrimaryColor)
	}
	if doc.UpdatedAt.IsZero() {
		t.Error("updatedAt not stamped")
	}
}

func TestBrandingStore_MergeRetainsOmitted(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	t.Cleanup(func() { cleanBranding(t, db) })
	s := NewBrandingStore(db)
	ctx := context.Background()

	services := []models.ServiceItem{{Title: "Consulting", Description: "We consult.", Icon: "users"}}
	first, err := s.Apply(ctx, &models.BrandingPatch{
		CompanyName: strPtr("Acme"),
		HeroTitle:   strPtr("Welcome"),
		Services:    &services,
	})
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	second, err := s.Apply(ctx, &models.BrandingPatch{HeroTitle: strPtr("Hello")})
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	if second.CompanyName != "Acme" {
		t.Errorf("companyName = %q, omitted field must be retained", second.CompanyName)
	}
	if second.HeroTitle != "Hello" {
		t.Errorf("heroTitle = %q", second.HeroTitle)
	}
	if len(second.Services) != 1 || second.Services[0].Title != "Consulting" {
		t.Errorf("services = %+v, must survive unrelated patch", second.Services)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updatedAt %v not after %v", second.UpdatedAt, first.UpdatedAt)
	}

	// Explicit empty string clears, unlike omission.
	third, err := s.Apply(ctx, &models.BrandingPatch{HeroTitle: strPtr("")})
	if err != nil {
		t.Fatalf("third Apply: %v", err)
	}
	if third.HeroTitle != "" {
		t.Errorf("heroTitle = %q, explicit empty must clear", third.HeroTitle)
	}
}

func TestBrandingStore_ClampsLogoSize(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	t.Cleanup(func() { cleanBranding(t, db) })
	s := NewBrandingStore(db)

	doc, err := s.Apply(context.Background(), &models.BrandingPatch{LogoSize: intPtr(10)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if doc.LogoSize != models.LogoSizeMin {
		t.Errorf("logoSize = %d, want clamped to %d", doc.LogoSize, models.LogoSizeMin)
	}
}

func TestBrandingStore_SingletonRow(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	t.Cleanup(func() { cleanBranding(t, db) })
	s := NewBrandingStore(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Apply(ctx, &models.BrandingPatch{CompanyName: strPtr("Acme")}); err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM branding_settings").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want exactly 1", count)
	}
}

func TestBrandingStore_GradientRoundTrip(t *testing.T) {
	db := testDB(t)
	cleanBranding(t, db)
	t.Cleanup(func() { cleanBranding(t, db) })
	s := NewBrandingStore(db)
	ctx := context.Background()

	if _, err := s.Apply(ctx, &models.BrandingPatch{
		LoginGradient: &models.Gradient{From: "#111111", To: "#222222"},
		LoginFeatures: &[]string{"Fast", "Secure"},
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	doc, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.LoginGradient == nil || doc.LoginGradient.From != "#111111" || doc.LoginGradient.To != "#222222" {
		t.Errorf("gradient = %+v", doc.LoginGradient)
	}
	if len(doc.LoginFeatures) != 2 {
		t.Errorf("loginFeatures = %v", doc.LoginFeatures)
	}
}
