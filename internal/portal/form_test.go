package portal

import (
	"context"
	"errors"
	"testing"

	"clientportal/internal/branding"
	"clientportal/internal/models"
)

// stubSubmitter validates patches like the real service and applies them
// to an in-memory document.
type stubSubmitter struct {
	doc     *models.BrandingSettings
	submits int
	failErr error
}

func (s *stubSubmitter) SubmitBranding(_ context.Context, patch *models.BrandingPatch) (*models.BrandingSettings, error) {
	s.submits++
	if s.failErr != nil {
		return nil, s.failErr
	}
	if verr := branding.ValidatePatch(patch); verr != nil {
		return nil, verr
	}
	s.doc = s.doc.Merge(patch)
	return s.doc, nil
}

func loadedForm(t *testing.T, doc *models.BrandingSettings, submitter *stubSubmitter) *Form {
	t.Helper()
	client := newTestClient(&stubFetcher{doc: doc}, newFakeClock())
	f := NewForm(client, submitter)
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f
}

func baseDoc() *models.BrandingSettings {
	return &models.BrandingSettings{
		CompanyName:   "Acme",
		PrimaryColor:  "#111111",
		LogoSize:      32,
		Services:      []models.ServiceItem{{Title: "Consulting", Description: "We consult.", Icon: "users"}},
		LoginFeatures: []string{"Fast", "Secure"},
	}
}

func TestForm_LoadSnapshotDoesNotAliasCache(t *testing.T) {
	f := loadedForm(t, baseDoc(), &stubSubmitter{})

	f.Values.Services[0].Title = "Edited"
	f.AddLoginFeature("Extra")

	state := f.client.Current(context.Background())
	if state.Document.Services[0].Title != "Consulting" {
		t.Error("form edits leaked into the cached document")
	}
	if len(state.Document.LoginFeatures) != 2 {
		t.Error("form edits leaked into cached login features")
	}
}

func TestForm_DisabledUntilLoaded(t *testing.T) {
	client := newTestClient(&stubFetcher{err: errors.New("down")}, newFakeClock())
	f := NewForm(client, &stubSubmitter{})

	if err := f.Load(context.Background()); err == nil {
		t.Fatal("expected load failure")
	}
	if !f.Disabled() {
		t.Error("form must stay disabled when the document is unavailable")
	}
	if err := f.Submit(context.Background()); err == nil {
		t.Error("submit on a disabled form must fail")
	}
}

func TestForm_CollectionOps(t *testing.T) {
	f := loadedForm(t, baseDoc(), &stubSubmitter{})

	f.AddService(models.ServiceItem{Title: "Hosting", Description: "We host.", Icon: "cloud"})
	if len(f.Values.Services) != 2 {
		t.Fatalf("services = %d, want 2", len(f.Values.Services))
	}
	if err := f.UpdateService(0, models.ServiceItem{Title: "Advisory", Description: "New text.", Icon: "chart"}); err != nil {
		t.Fatalf("UpdateService: %v", err)
	}
	if f.Values.Services[0].Title != "Advisory" {
		t.Errorf("service[0] = %+v", f.Values.Services[0])
	}
	if err := f.RemoveService(1); err != nil {
		t.Fatalf("RemoveService: %v", err)
	}
	if len(f.Values.Services) != 1 {
		t.Errorf("services = %d, want 1", len(f.Values.Services))
	}

	if err := f.RemoveService(5); err == nil {
		t.Error("out-of-range remove must fail")
	}

	f.AddLoginFeature("Reliable")
	if err := f.UpdateLoginFeature(0, "Blazing fast"); err != nil {
		t.Fatalf("UpdateLoginFeature: %v", err)
	}
	if err := f.RemoveLoginFeature(1); err != nil {
		t.Fatalf("RemoveLoginFeature: %v", err)
	}
	want := []string{"Blazing fast", "Reliable"}
	if len(f.Values.LoginFeatures) != 2 || f.Values.LoginFeatures[0] != want[0] || f.Values.LoginFeatures[1] != want[1] {
		t.Errorf("login features = %v, want %v", f.Values.LoginFeatures, want)
	}
}

func TestForm_SubmitSuccessInvalidatesCache(t *testing.T) {
	submitter := &stubSubmitter{doc: baseDoc()}
	f := loadedForm(t, baseDoc(), submitter)

	f.Values.CompanyName = "Acme Renamed"
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if submitter.doc.CompanyName != "Acme Renamed" {
		t.Errorf("submitted companyName = %q", submitter.doc.CompanyName)
	}
	if f.Values.CompanyName != "Acme Renamed" {
		t.Errorf("form snapshot = %q", f.Values.CompanyName)
	}
	if len(f.FieldErrors) != 0 || f.Err != nil {
		t.Errorf("errors not cleared: %v %v", f.FieldErrors, f.Err)
	}

	// The client cache was invalidated, so the next read refetches.
	f.client.mu.Lock()
	stale := f.client.fetchedAt.IsZero()
	f.client.mu.Unlock()
	if !stale {
		t.Error("client cache should be stale after a successful submit")
	}
}

func TestForm_SubmitFailureRetainsEdits(t *testing.T) {
	submitter := &stubSubmitter{doc: baseDoc()}
	f := loadedForm(t, baseDoc(), submitter)

	f.Values.PrimaryColor = "not-a-color"
	f.Values.HeroTitle = "Unsaved hero copy"
	err := f.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var verr *branding.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(f.FieldErrors) == 0 || f.FieldErrors[0].Field != "primaryColor" {
		t.Errorf("field errors = %+v", f.FieldErrors)
	}
	if f.Values.PrimaryColor != "not-a-color" || f.Values.HeroTitle != "Unsaved hero copy" {
		t.Error("failed submit must retain unsaved edits")
	}
	if submitter.doc.PrimaryColor != "#111111" {
		t.Error("rejected patch must not be applied server-side")
	}
}

func TestForm_SubmitServerErrorKeepsEdits(t *testing.T) {
	submitter := &stubSubmitter{doc: baseDoc(), failErr: errors.New("backend down")}
	f := loadedForm(t, baseDoc(), submitter)

	f.Values.CompanyName = "Edited"
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	if f.Values.CompanyName != "Edited" {
		t.Error("edits lost on server error")
	}
	if len(f.FieldErrors) != 0 {
		t.Errorf("no field errors expected for transport failure, got %+v", f.FieldErrors)
	}
}
