// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Branding size limits. Logo size is clamped into this range on every write.
const (
	LogoSizeMin     = 16
	LogoSizeMax     = 64
	LogoSizeDefault = 32

	// DefaultPrimaryColor is applied when no color has ever been saved.
	DefaultPrimaryColor = "#000000"

	// DefaultCompanyName is the placeholder used when the first write
	// omits a company name.
	DefaultCompanyName = "My Company"
)

// ServiceItem is one entry in the "services" section of the public homepage.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Gradient holds the two stops of the login page background gradient.
type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BrandingSettings is the singleton document controlling site appearance
// and copy. At most one row exists; the schema enforces this with a
// fixed-key primary key.
type BrandingSettings struct {
	CompanyName      string        `json:"companyName"`
	LogoURL          string        `json:"logo,omitempty"`
	FaviconURL       string        `json:"favicon,omitempty"`
	LogoSize         int           `json:"logoSize"`
	PrimaryColor     string        `json:"primaryColor"`
	MetaTitle        string        `json:"metaTitle,omitempty"`
	MetaDescription  string        `json:"metaDescription,omitempty"`
	HeroTitle        string        `json:"heroTitle,omitempty"`
	HeroDescription  string        `json:"heroDescription,omitempty"`
	Services         []ServiceItem `json:"services,omitempty"`
	CTATitle         string        `json:"ctaTitle,omitempty"`
	CTADescription   string        `json:"ctaDescription,omitempty"`
	CTAButtonText    string        `json:"ctaButtonText,omitempty"`
	LoginTitle       string        `json:"loginTitle,omitempty"`
	LoginDescription string        `json:"loginDescription,omitempty"`
	LoginFeatures    []string      `json:"loginFeatures,omitempty"`
	LoginGradient    *Gradient     `json:"loginBackgroundGradient,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// BrandingPatch is a partial update. Nil pointers mean "field omitted,
// keep the stored value". The JSON shape matches BrandingSettings so a
// full form submission is also a valid patch.
type BrandingPatch struct {
	CompanyName      *string        `json:"companyName,omitempty"`
	LogoURL          *string        `json:"logo,omitempty"`
	FaviconURL       *string        `json:"favicon,omitempty"`
	LogoSize         *int           `json:"logoSize,omitempty"`
	PrimaryColor     *string        `json:"primaryColor,omitempty"`
	MetaTitle        *string        `json:"metaTitle,omitempty"`
	MetaDescription  *string        `json:"metaDescription,omitempty"`
	HeroTitle        *string        `json:"heroTitle,omitempty"`
	HeroDescription  *string        `json:"heroDescription,omitempty"`
	Services         *[]ServiceItem `json:"services,omitempty"`
	CTATitle         *string        `json:"ctaTitle,omitempty"`
	CTADescription   *string        `json:"ctaDescription,omitempty"`
	CTAButtonText    *string        `json:"ctaButtonText,omitempty"`
	LoginTitle       *string        `json:"loginTitle,omitempty"`
	LoginDescription *string        `json:"loginDescription,omitempty"`
	LoginFeatures    *[]string      `json:"loginFeatures,omitempty"`
	LoginGradient    *Gradient      `json:"loginBackgroundGradient,omitempty"`
}

// DefaultBranding returns the empty-defaults document served when no row
// has been persisted yet. Always renderable, never nil.
func DefaultBranding() *BrandingSettings {
	return &BrandingSettings{
		LogoSize:     LogoSizeDefault,
		PrimaryColor: DefaultPrimaryColor,
	}
}

// Merge applies the patch field-wise onto a copy of the document and
// returns the result. Omitted (nil) fields retain their stored values.
// Collection fields are replaced as a unit, not merged element-wise.
func (b *BrandingSettings) Merge(p *BrandingPatch) *BrandingSettings {
	out := *b
	if p == nil {
		return &out
	}
	if p.CompanyName != nil {
		out.CompanyName = *p.CompanyName
	}
	if p.LogoURL != nil {
		out.LogoURL = *p.LogoURL
	}
	if p.FaviconURL != nil {
		out.FaviconURL = *p.FaviconURL
	}
	if p.LogoSize != nil {
		out.LogoSize = ClampLogoSize(*p.LogoSize)
	}
	if p.PrimaryColor != nil {
		out.PrimaryColor = *p.PrimaryColor
	}
	if p.MetaTitle != nil {
		out.MetaTitle = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		out.MetaDescription = *p.MetaDescription
	}
	if p.HeroTitle != nil {
		out.HeroTitle = *p.HeroTitle
	}
	if p.HeroDescription != nil {
		out.HeroDescription = *p.HeroDescription
	}
	if p.Services != nil {
		out.Services = append([]ServiceItem(nil), (*p.Services)...)
	}
	if p.CTATitle != nil {
		out.CTATitle = *p.CTATitle
	}
	if p.CTADescription != nil {
		out.CTADescription = *p.CTADescription
	}
	if p.CTAButtonText != nil {
		out.CTAButtonText = *p.CTAButtonText
	}
	if p.LoginTitle != nil {
		out.LoginTitle = *p.LoginTitle
	}
	if p.LoginDescription != nil {
		out.LoginDescription = *p.LoginDescription
	}
	if p.LoginFeatures != nil {
		out.LoginFeatures = append([]string(nil), (*p.LoginFeatures)...)
	}
	if p.LoginGradient != nil {
		g := *p.LoginGradient
		out.LoginGradient = &g
	}
	return &out
}

// ClampLogoSize forces a logo size into the valid range.
func ClampLogoSize(px int) int {
	if px < LogoSizeMin {
		return LogoSizeMin
	}
	if px > LogoSizeMax {
		return LogoSizeMax
	}
	return px
}

// Title returns the document title to display: metaTitle, falling back to
// the company name, falling back to a fixed default.
func (b *BrandingSettings) Title() string {
	if b.MetaTitle != "" {
		return b.MetaTitle
	}
	if b.CompanyName != "" {
		return b.CompanyName
	}
	return "Client Portal"
}
